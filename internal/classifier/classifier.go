// Package classifier resolves the meal slot of a recipe from a rule dataset.
package classifier

import (
	"strings"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
	"github.com/actuallystonmai/daily-menu-service/internal/rules"
)

// quickMealMinutes is the upper bound of total time for the quick-meal heuristic.
const quickMealMinutes = 30

type Classifier struct {
	dataset     *rules.Dataset
	keywords    []rules.SlotKeywords
	ingredients []rules.SlotKeywords
}

// New snapshots the dataset's rules. A nil dataset behaves like rules.Empty().
func New(ds *rules.Dataset) *Classifier {
	if ds == nil {
		ds = rules.Empty()
	}
	return &Classifier{
		dataset:     ds,
		keywords:    ds.KeywordRules(),
		ingredients: ds.IngredientRules(),
	}
}

// Classify always returns exactly one slot. The first matching rule wins, in
// this order: category name, keyword in title/description/category,
// ingredient name, quick-and-easy heuristic, dataset default.
func (c *Classifier) Classify(r *domain.Recipe) domain.MealSlot {
	if r == nil {
		return c.dataset.Default()
	}

	if r.Category != nil {
		if slot, ok := c.dataset.CategorySlot(r.Category.Name); ok {
			return slot
		}
	}

	if slot, ok := c.matchKeyword(r); ok {
		return slot
	}

	if slot, ok := c.matchIngredient(r); ok {
		return slot
	}

	if r.Difficulty == domain.DifficultyEasy {
		if total := r.TotalMinutes(); total > 0 && total <= quickMealMinutes {
			return domain.QuickMealSlot
		}
	}

	return c.dataset.Default()
}

func (c *Classifier) matchKeyword(r *domain.Recipe) (domain.MealSlot, bool) {
	text := strings.ToLower(r.Title + " " + r.Description + " " + r.CategoryName())
	for _, rule := range c.keywords {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Slot, true
			}
		}
	}
	return "", false
}

func (c *Classifier) matchIngredient(r *domain.Recipe) (domain.MealSlot, bool) {
	names := r.IngredientNames()
	if len(names) == 0 {
		return "", false
	}
	have := make(map[string]struct{}, len(names))
	for _, n := range names {
		have[n] = struct{}{}
	}
	for _, rule := range c.ingredients {
		for _, kw := range rule.Keywords {
			if _, ok := have[kw]; ok {
				return rule.Slot, true
			}
		}
	}
	return "", false
}
