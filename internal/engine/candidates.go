package engine

import "github.com/actuallystonmai/daily-menu-service/internal/domain"

// candidateIndex holds the visible recipes in catalog order plus an id lookup.
type candidateIndex struct {
	recipes []*domain.Recipe
	byID    map[int64]*domain.Recipe
}

func buildCandidateIndex(catalog []domain.Recipe) *candidateIndex {
	idx := &candidateIndex{byID: make(map[int64]*domain.Recipe, len(catalog))}
	for i := range catalog {
		r := &catalog[i]
		if !r.Visible() {
			continue
		}
		if _, dup := idx.byID[r.ID]; dup {
			continue
		}
		idx.byID[r.ID] = r
		idx.recipes = append(idx.recipes, r)
	}
	return idx
}

func (idx *candidateIndex) empty() bool {
	return len(idx.recipes) == 0
}

func (idx *candidateIndex) get(id int64) (*domain.Recipe, bool) {
	r, ok := idx.byID[id]
	return r, ok
}

// leastViewed picks the visible recipe with the fewest views, lowest id on ties.
func (idx *candidateIndex) leastViewed() *domain.Recipe {
	var best *domain.Recipe
	for _, r := range idx.recipes {
		if best == nil || r.ViewCount < best.ViewCount || (r.ViewCount == best.ViewCount && r.ID < best.ID) {
			best = r
		}
	}
	return best
}
