package engine

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
)

const (
	contentCategoryWeight   = 0.4
	contentDifficultyWeight = 0.2
	contentIngredientWeight = 0.4

	collaborativeBase      = 0.5
	collaborativePerPeer   = 0.1
	collaborativeMaxCounts = 5

	popularityBonus = 0.3

	trendingJustification = "trending with many viewers"
)

// scoreContentBased compares every candidate with the anchor. The ingredient
// overlap is always divided by the anchor's ingredient count.
func scoreContentBased(acc *accumulator, anchor *domain.Recipe, candidates []*domain.Recipe, excluded map[int64]struct{}) {
	anchorCategory, anchorHasCategory := anchor.CategoryID()
	anchorIngredients := anchor.IngredientNames()
	anchorSet := make(map[string]struct{}, len(anchorIngredients))
	for _, n := range anchorIngredients {
		anchorSet[n] = struct{}{}
	}

	for _, c := range candidates {
		if c.ID == anchor.ID {
			continue
		}
		if _, skip := excluded[c.ID]; skip {
			continue
		}

		score := 0.0
		reasons := []string{fmt.Sprintf("similar to %s", anchor.Title)}

		if id, ok := c.CategoryID(); ok && anchorHasCategory && id == anchorCategory {
			score += contentCategoryWeight
			reasons = append(reasons, fmt.Sprintf("same category: %s", c.CategoryName()))
		}

		if anchor.Difficulty != "" && c.Difficulty == anchor.Difficulty {
			score += contentDifficultyWeight
			reasons = append(reasons, fmt.Sprintf("same difficulty: %s", c.Difficulty))
		}

		if len(anchorSet) > 0 {
			shared := 0
			for _, n := range c.IngredientNames() {
				if _, ok := anchorSet[n]; ok {
					shared++
				}
			}
			if shared > 0 {
				score += contentIngredientWeight * float64(shared) / float64(len(anchorSet))
				reasons = append(reasons, fmt.Sprintf("shares %d of %d ingredients", shared, len(anchorSet)))
			}
		}

		if score > 0 {
			acc.add(c, score, domain.StrategyContentBased, reasons...)
		}
	}
}

// scoreCollaborative looks at other users who saved the anchor and scores
// the visible recipes they also saved.
func scoreCollaborative(ctx context.Context, src Source, acc *accumulator, userID int64, anchor *domain.Recipe, idx *candidateIndex, excluded map[int64]struct{}) error {
	savers, err := src.FavoritesByRecipe(ctx, anchor.ID)
	if err != nil {
		return fmt.Errorf("fetch favorites of anchor %d: %w", anchor.ID, err)
	}

	peers := make([]int64, 0, len(savers))
	seen := make(map[int64]struct{}, len(savers))
	for _, f := range savers {
		if f.UserID == userID {
			continue
		}
		if _, ok := seen[f.UserID]; ok {
			continue
		}
		seen[f.UserID] = struct{}{}
		peers = append(peers, f.UserID)
	}
	if len(peers) == 0 {
		return nil
	}

	ids, err := src.ActiveFavoriteRecipeIDs(ctx, peers)
	if err != nil {
		return fmt.Errorf("fetch peer favorites: %w", err)
	}

	counts := make(map[int64]int)
	var order []int64
	for _, id := range ids {
		if id == anchor.ID {
			continue
		}
		if _, skip := excluded[id]; skip {
			continue
		}
		if _, ok := counts[id]; !ok {
			order = append(order, id)
		}
		counts[id]++
	}

	for _, id := range order {
		r, ok := idx.get(id)
		if !ok {
			continue
		}
		count := counts[id]
		score := collaborativeBase + float64(min(count, collaborativeMaxCounts))*collaborativePerPeer
		acc.add(r, score, domain.StrategyCollaborative,
			fmt.Sprintf("%d people also liked this after saving %s", count, anchor.Title))
	}
	return nil
}

// scorePopularity gives a flat bonus to the most viewed visible recipes,
// independent of the anchor.
func scorePopularity(ctx context.Context, src Source, acc *accumulator, idx *candidateIndex, limit int) error {
	popular, err := src.PopularRecipes(ctx, limit)
	if err != nil {
		return fmt.Errorf("fetch popular recipes: %w", err)
	}
	for _, p := range popular {
		r, ok := idx.get(p.ID)
		if !ok {
			continue
		}
		acc.add(r, popularityBonus, domain.StrategyPopularity, trendingJustification)
	}
	return nil
}
