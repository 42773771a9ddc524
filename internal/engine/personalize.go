package engine

import (
	"fmt"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
)

const (
	varietyBonus  = 0.1
	favoriteBonus = 0.15

	cookedCategoryWeight   = 2
	favoriteCategoryWeight = 1

	favoriteJustification = "matches a category you usually enjoy"
)

type categoryVote struct {
	category *domain.Category
	weight   int
}

// favoriteCategory tallies categories over cooked history (weight 2) and
// favorites (weight 1). Ties go to the category seen first, which is the
// most recent cooked entry before any favorite.
func favoriteCategory(histories []domain.CookedHistory, favorites []domain.Favorite) *domain.Category {
	votes := make(map[int64]*categoryVote)
	var order []*categoryVote

	vote := func(r *domain.Recipe, weight int) {
		if r == nil || r.Category == nil {
			return
		}
		v, ok := votes[r.Category.ID]
		if !ok {
			v = &categoryVote{category: r.Category}
			votes[r.Category.ID] = v
			order = append(order, v)
		}
		v.weight += weight
	}

	for _, h := range histories {
		vote(h.Recipe, cookedCategoryWeight)
	}
	for _, f := range favorites {
		vote(f.Recipe, favoriteCategoryWeight)
	}

	var best *categoryVote
	for _, v := range order {
		if best == nil || v.weight > best.weight {
			best = v
		}
	}
	if best == nil {
		return nil
	}
	return best.category
}

// enrich runs once after all strategies. It adds the variety and favorite
// category bonuses and resolves each suggestion's meal slot.
func (e *Engine) enrich(acc *accumulator, recentlyCooked map[int64]struct{}, favorite *domain.Category) {
	variety := fmt.Sprintf("not cooked in the last %d days", e.cfg.FreshnessWindowDays)

	for _, s := range acc.order {
		if _, recent := recentlyCooked[s.recipe.ID]; !recent {
			acc.add(s.recipe, varietyBonus, domain.StrategyPersonalizedVariety, variety)
		}
		if favorite != nil {
			if id, ok := s.recipe.CategoryID(); ok && id == favorite.ID {
				acc.add(s.recipe, favoriteBonus, domain.StrategyPersonalizedFavorite, favoriteJustification)
			}
		}
		if s.mealSlot == "" {
			s.mealSlot = e.classifier.Classify(s.recipe)
		}
	}
}
