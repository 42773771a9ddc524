package handler

type RecipeRequest struct {
	RecipeID int64 `json:"recipeId" validate:"required,gt=0"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
