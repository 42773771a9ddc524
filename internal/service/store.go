package service

import (
	"context"
	"time"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
	"github.com/actuallystonmai/daily-menu-service/internal/engine"
	"github.com/actuallystonmai/daily-menu-service/internal/repository"
)

// Snapshot is everything one menu generation reads, served from a single
// consistent view of the data.
type Snapshot interface {
	engine.Source
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

type Store interface {
	Snapshot(ctx context.Context, fn func(Snapshot) error) error
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	GetRecipeByID(ctx context.Context, recipeID int64) (*domain.Recipe, error)
	GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
	AddCookedHistory(ctx context.Context, userID int64, recipe *domain.Recipe, cookedAt time.Time) error
	AddFavorite(ctx context.Context, userID, recipeID int64) error
}

type MenuCache interface {
	Get(ctx context.Context, userID int64, size int, date string) (*domain.DailyMenu, error)
	Set(ctx context.Context, userID int64, size int, date string, menu *domain.DailyMenu) error
	ClearUserCache(ctx context.Context, userID int64) error
}

type repositoryStore struct {
	*repository.Repository
}

// NewRepositoryStore serves snapshots from read-only repository transactions.
func NewRepositoryStore(repo *repository.Repository) Store {
	return repositoryStore{repo}
}

func (s repositoryStore) Snapshot(ctx context.Context, fn func(Snapshot) error) error {
	return s.ReadOnly(ctx, func(tx *repository.Repository) error {
		return fn(tx)
	})
}
