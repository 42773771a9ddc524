package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
)

type fakeStore struct {
	mu        sync.Mutex
	users     map[int64]domain.User
	recipes   []domain.Recipe
	histories []domain.CookedHistory
	favorites []domain.Favorite
	snapshots int
	readErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int64]domain.User{}}
}

func (f *fakeStore) addUser(id int64) {
	f.users[id] = domain.User{ID: id, DisplayName: fmt.Sprintf("user %d", id)}
}

func (f *fakeStore) addRecipe(id int64, title, category string, views int64) {
	r := domain.Recipe{
		ID:         id,
		Title:      title,
		ViewCount:  views,
		Visibility: domain.VisibilityPublic,
		Difficulty: domain.DifficultyMedium,
	}
	if category != "" {
		r.Category = &domain.Category{ID: int64(len(category)), Name: category}
	}
	f.recipes = append(f.recipes, r)
}

func (f *fakeStore) recipe(id int64) *domain.Recipe {
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			r := f.recipes[i]
			return &r
		}
	}
	return nil
}

func (f *fakeStore) Snapshot(ctx context.Context, fn func(Snapshot) error) error {
	f.mu.Lock()
	f.snapshots++
	f.mu.Unlock()
	return fn(f)
}

func (f *fakeStore) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeStore) GetRecipeByID(ctx context.Context, recipeID int64) (*domain.Recipe, error) {
	r := f.recipe(recipeID)
	if r == nil || r.Deleted {
		return nil, domain.ErrRecipeNotFound
	}
	return r, nil
}

func (f *fakeStore) GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error) {
	var ids []int64
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	start := (page - 1) * limit
	if start >= len(ids) {
		return nil, nil
	}
	return ids[start:min(start+limit, len(ids))], nil
}

func (f *fakeStore) CountUsers(ctx context.Context) (int, error) {
	return len(f.users), nil
}

func (f *fakeStore) AddCookedHistory(ctx context.Context, userID int64, recipe *domain.Recipe, cookedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.histories = append(f.histories, domain.CookedHistory{
		ID: int64(len(f.histories) + 1), UserID: userID, Recipe: recipe, CookedAt: cookedAt, TitleSnapshot: recipe.Title,
	})
	return nil
}

func (f *fakeStore) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fav := range f.favorites {
		if fav.UserID == userID && fav.Recipe.ID == recipeID {
			return nil
		}
	}
	f.favorites = append(f.favorites, domain.Favorite{
		ID: int64(len(f.favorites) + 1), UserID: userID, Recipe: f.recipe(recipeID), CreatedAt: time.Now(),
	})
	return nil
}

func (f *fakeStore) Catalog(ctx context.Context) ([]domain.Recipe, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make([]domain.Recipe, len(f.recipes))
	copy(out, f.recipes)
	return out, nil
}

func (f *fakeStore) CookedHistory(ctx context.Context, userID int64) ([]domain.CookedHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.CookedHistory
	for _, h := range f.histories {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CookedAt.After(out[j].CookedAt) })
	return out, nil
}

func (f *fakeStore) RecentlyCookedRecipeIDs(ctx context.Context, userID int64, since time.Time) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for _, h := range f.histories {
		if h.UserID == userID && h.Recipe != nil && !h.CookedAt.Before(since) {
			out = append(out, h.Recipe.ID)
		}
	}
	return out, nil
}

func (f *fakeStore) Favorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Favorite
	for i := len(f.favorites) - 1; i >= 0; i-- {
		if f.favorites[i].UserID == userID {
			out = append(out, f.favorites[i])
		}
	}
	return out, nil
}

func (f *fakeStore) FavoritesByRecipe(ctx context.Context, recipeID int64) ([]domain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Favorite
	for _, fav := range f.favorites {
		if fav.Recipe != nil && fav.Recipe.ID == recipeID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (f *fakeStore) ActiveFavoriteRecipeIDs(ctx context.Context, userIDs []int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		want[id] = true
	}
	var out []int64
	for _, fav := range f.favorites {
		if want[fav.UserID] && fav.Recipe != nil && fav.Recipe.Visible() {
			out = append(out, fav.Recipe.ID)
		}
	}
	return out, nil
}

func (f *fakeStore) PopularRecipes(ctx context.Context, limit int) ([]domain.Recipe, error) {
	out := make([]domain.Recipe, 0, len(f.recipes))
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

var errCacheDown = errors.New("cache down")

type fakeCache struct {
	mu       sync.Mutex
	menus    map[string]*domain.DailyMenu
	getErr   error
	cleared  []int64
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{menus: map[string]*domain.DailyMenu{}}
}

func cacheKey(userID int64, size int, date string) string {
	return fmt.Sprintf("%d/%d/%s", userID, size, date)
}

func (c *fakeCache) Get(ctx context.Context, userID int64, size int, date string) (*domain.DailyMenu, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.menus[cacheKey(userID, size, date)], nil
}

func (c *fakeCache) Set(ctx context.Context, userID int64, size int, date string, menu *domain.DailyMenu) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	c.menus[cacheKey(userID, size, date)] = menu
	return nil
}

func (c *fakeCache) ClearUserCache(ctx context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleared = append(c.cleared, userID)
	prefix := fmt.Sprintf("%d/", userID)
	for k := range c.menus {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.menus, k)
		}
	}
	return nil
}
