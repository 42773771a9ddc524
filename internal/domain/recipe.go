package domain

import (
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityShared  Visibility = "SHARED"
	VisibilityPrivate Visibility = "PRIVATE"
)

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Recipe is the catalog row as read by the recommendation engine.
// Difficulty is empty and PrepareMinutes/CookMinutes are nil when unknown.
type Recipe struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	ImageURL       string       `json:"image_url"`
	Category       *Category    `json:"category"`
	Ingredients    []Ingredient `json:"ingredients"`
	Difficulty     Difficulty   `json:"difficulty"`
	PrepareMinutes *int         `json:"prepare_minutes"`
	CookMinutes    *int         `json:"cook_minutes"`
	ViewCount      int64        `json:"view_count"`
	Visibility     Visibility   `json:"visibility"`
	Deleted        bool         `json:"deleted"`
	OwnerID        int64        `json:"owner_id"`
	OwnerName      string       `json:"owner_name"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Visible reports whether the recipe may be shown to anonymous readers.
func (r *Recipe) Visible() bool {
	return !r.Deleted && r.Visibility == VisibilityPublic
}

func (r *Recipe) CategoryID() (int64, bool) {
	if r.Category == nil {
		return 0, false
	}
	return r.Category.ID, true
}

func (r *Recipe) CategoryName() string {
	if r.Category == nil {
		return ""
	}
	return r.Category.Name
}

// IngredientNames returns the trimmed, lower-cased, de-duplicated ingredient
// names in recipe order. Blank names are dropped.
func (r *Recipe) IngredientNames() []string {
	seen := make(map[string]struct{}, len(r.Ingredients))
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		name := NormalizeName(ing.Name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// TotalMinutes sums prepare and cook time, treating unknown values as zero.
func (r *Recipe) TotalMinutes() int {
	total := 0
	if r.PrepareMinutes != nil {
		total += *r.PrepareMinutes
	}
	if r.CookMinutes != nil {
		total += *r.CookMinutes
	}
	return total
}

func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
