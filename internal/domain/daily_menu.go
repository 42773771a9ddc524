package domain

import "time"

type AnchorSource string

const (
	AnchorCookedHistory  AnchorSource = "COOKED_HISTORY"
	AnchorFavorite       AnchorSource = "FAVORITE"
	AnchorPopularitySeed AnchorSource = "POPULARITY_SEED"
	AnchorUnknown        AnchorSource = "UNKNOWN"
	AnchorNone           AnchorSource = "NONE"
	AnchorNoData         AnchorSource = "NO_DATA"
)

type Strategy string

const (
	StrategyContentBased         Strategy = "CONTENT_BASED"
	StrategyCollaborative        Strategy = "COLLABORATIVE"
	StrategyPopularity           Strategy = "POPULARITY"
	StrategyPersonalizedVariety  Strategy = "PERSONALIZED_VARIETY"
	StrategyPersonalizedFavorite Strategy = "PERSONALIZED_FAVORITE"
)

// RecipeCard is the summary projection used in menu responses.
type RecipeCard struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ImageURL    string `json:"imageUrl"`
	OwnerName   string `json:"ownerName"`
	CreatedDate string `json:"createdDate"`
	Difficulty  string `json:"difficulty"`
	ViewCount   int64  `json:"viewCount"`
	Deleted     bool   `json:"deleted"`
}

func NewRecipeCard(r *Recipe) RecipeCard {
	card := RecipeCard{
		ID:         r.ID,
		Title:      r.Title,
		ImageURL:   r.ImageURL,
		OwnerName:  r.OwnerName,
		Difficulty: string(r.Difficulty),
		ViewCount:  r.ViewCount,
		Deleted:    r.Deleted,
	}
	if !r.CreatedAt.IsZero() {
		card.CreatedDate = r.CreatedAt.UTC().Format(time.DateOnly)
	}
	return card
}

type Suggestion struct {
	Recipe         RecipeCard `json:"recipe"`
	MealType       MealSlot   `json:"mealType"`
	Score          float64    `json:"score"`
	Strategies     []Strategy `json:"strategies"`
	Justifications []string   `json:"justifications"`
}

type DailyMenu struct {
	AnchorRecipe         *RecipeCard  `json:"anchorRecipe"`
	AnchorMealType       *MealSlot    `json:"anchorMealType"`
	AnchorSource         AnchorSource `json:"anchorSource"`
	FavoriteCategoryName *string      `json:"favoriteCategoryName"`
	FreshnessWindowDays  int          `json:"freshnessWindowDays"`
	GeneratedDate        string       `json:"generatedDate"`
	Suggestions          []Suggestion `json:"suggestions"`
}

type DailyMenuResult struct {
	Menu     *DailyMenu
	CacheHit bool
}

type BatchStatus string

const (
	StatusSuccess BatchStatus = "success"
	StatusFailed  BatchStatus = "failed"
)

type BatchUserResult struct {
	UserID  int64       `json:"user_id"`
	Menu    *DailyMenu  `json:"menu,omitempty"`
	Status  BatchStatus `json:"status"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalUsers int               `json:"total_users"`
	Results    []BatchUserResult `json:"results"`
	Summary    BatchSummary      `json:"summary"`
	Metadata   BatchMeta         `json:"metadata"`
}
