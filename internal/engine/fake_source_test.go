package engine

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
)

// fakeSource is an in-memory Source. Histories and favorites are stored in
// insertion order and returned most recent first.
type fakeSource struct {
	recipes   []domain.Recipe
	histories []domain.CookedHistory
	favorites []domain.Favorite

	catalogErr error
	calls      int
}

func (f *fakeSource) recipe(id int64) *domain.Recipe {
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			r := f.recipes[i]
			return &r
		}
	}
	return nil
}

func (f *fakeSource) cook(userID, recipeID int64, at time.Time) {
	h := domain.CookedHistory{ID: int64(len(f.histories) + 1), UserID: userID, CookedAt: at}
	if r := f.recipe(recipeID); r != nil {
		h.Recipe = r
		h.TitleSnapshot = r.Title
	}
	f.histories = append(f.histories, h)
}

func (f *fakeSource) favorite(userID, recipeID int64, at time.Time) {
	f.favorites = append(f.favorites, domain.Favorite{
		ID: int64(len(f.favorites) + 1), UserID: userID, Recipe: f.recipe(recipeID), CreatedAt: at,
	})
}

func (f *fakeSource) Catalog(ctx context.Context) ([]domain.Recipe, error) {
	f.calls++
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	out := make([]domain.Recipe, len(f.recipes))
	copy(out, f.recipes)
	return out, nil
}

func (f *fakeSource) CookedHistory(ctx context.Context, userID int64) ([]domain.CookedHistory, error) {
	var out []domain.CookedHistory
	for _, h := range f.histories {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CookedAt.After(out[j].CookedAt) })
	return out, nil
}

func (f *fakeSource) RecentlyCookedRecipeIDs(ctx context.Context, userID int64, since time.Time) ([]int64, error) {
	var out []int64
	for _, h := range f.histories {
		if h.UserID == userID && h.Recipe != nil && !h.CookedAt.Before(since) {
			out = append(out, h.Recipe.ID)
		}
	}
	return out, nil
}

func (f *fakeSource) Favorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for i := len(f.favorites) - 1; i >= 0; i-- {
		if f.favorites[i].UserID == userID {
			out = append(out, f.favorites[i])
		}
	}
	return out, nil
}

func (f *fakeSource) FavoritesByRecipe(ctx context.Context, recipeID int64) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for _, fav := range f.favorites {
		if fav.Recipe != nil && fav.Recipe.ID == recipeID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (f *fakeSource) ActiveFavoriteRecipeIDs(ctx context.Context, userIDs []int64) ([]int64, error) {
	users := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		users[id] = struct{}{}
	}
	var out []int64
	for _, fav := range f.favorites {
		if _, ok := users[fav.UserID]; !ok || fav.Recipe == nil {
			continue
		}
		if r := f.recipe(fav.Recipe.ID); r != nil && r.Visible() {
			out = append(out, r.ID)
		}
	}
	return out, nil
}

func (f *fakeSource) PopularRecipes(ctx context.Context, limit int) ([]domain.Recipe, error) {
	var out []domain.Recipe
	for _, r := range f.recipes {
		if r.Visible() {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ViewCount != out[j].ViewCount {
			return out[i].ViewCount > out[j].ViewCount
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var errBoom = errors.New("boom")
