package engine

import (
	"math"
	"sort"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
)

// orderedSet keeps the first occurrence of each value in insertion order.
type orderedSet[T comparable] struct {
	items []T
	seen  map[T]struct{}
}

func (s *orderedSet[T]) add(v T) {
	if s.seen == nil {
		s.seen = make(map[T]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet[T]) values() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

type suggestion struct {
	recipe         *domain.Recipe
	score          float64
	mealSlot       domain.MealSlot
	strategies     orderedSet[domain.Strategy]
	justifications orderedSet[string]
}

// accumulator merges strategy contributions per recipe. order records first
// contribution order and is the tie-break for equal scores.
type accumulator struct {
	byID  map[int64]*suggestion
	order []*suggestion
}

func newAccumulator() *accumulator {
	return &accumulator{byID: make(map[int64]*suggestion)}
}

func (a *accumulator) add(r *domain.Recipe, score float64, strategy domain.Strategy, justifications ...string) {
	s, ok := a.byID[r.ID]
	if !ok {
		s = &suggestion{recipe: r}
		a.byID[r.ID] = s
		a.order = append(a.order, s)
	}
	s.score += score
	s.strategies.add(strategy)
	for _, j := range justifications {
		s.justifications.add(j)
	}
}

func (a *accumulator) get(id int64) (*suggestion, bool) {
	s, ok := a.byID[id]
	return s, ok
}

// render sorts by score descending, keeping insertion order on ties, and
// returns at most size suggestions.
func (a *accumulator) render(size int) []domain.Suggestion {
	ranked := make([]*suggestion, len(a.order))
	copy(ranked, a.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > size {
		ranked = ranked[:size]
	}

	out := make([]domain.Suggestion, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, domain.Suggestion{
			Recipe:         domain.NewRecipeCard(s.recipe),
			MealType:       s.mealSlot,
			Score:          roundScore(s.score),
			Strategies:     s.strategies.values(),
			Justifications: s.justifications.values(),
		})
	}
	return out
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
