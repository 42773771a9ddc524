package handler

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
)

// POST /users/{userID}/cooked
func (h *Handler) RecordCooked(w http.ResponseWriter, r *http.Request) {
	h.handleRecipeAction(w, r, h.service.RecordCooked)
}

// POST /users/{userID}/favorites
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.handleRecipeAction(w, r, h.service.AddFavorite)
}

func (h *Handler) handleRecipeAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, userID, recipeID int64) error) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "recipeId must be a positive integer")
		return
	}

	if err := action(r.Context(), userID, req.RecipeID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
