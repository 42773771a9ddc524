package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
	"github.com/actuallystonmai/daily-menu-service/internal/engine"
	"github.com/actuallystonmai/daily-menu-service/internal/logging"
	"github.com/actuallystonmai/daily-menu-service/internal/metrics"
)

const batchConcurrency = 10

type Service struct {
	store  Store
	cache  MenuCache
	engine *engine.Engine
	now    func() time.Time
}

// NewService wires the engine to its data. cache may be nil when caching is disabled.
func NewService(store Store, cache MenuCache, eng *engine.Engine) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		engine: eng,
		now:    time.Now,
	}
}

func (s *Service) GetDailyMenu(ctx context.Context, userID int64, size int) (*domain.DailyMenuResult, error) {
	log := logging.Ctx(ctx).With().Str("component", "service").Int64("user_id", userID).Logger()
	size = s.engine.ClampSize(size)
	now := s.now()
	date := now.UTC().Format(time.DateOnly)

	// Check Cache
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID, size, date)
		if err != nil {
			log.Warn().Err(err).Msg("cache get failed")
		}
		if cached != nil {
			metrics.MenuCacheHits.Inc()
			return &domain.DailyMenuResult{Menu: cached, CacheHit: true}, nil
		}
		metrics.MenuCacheMisses.Inc()
	}

	// Cache miss -> generate menu
	start := time.Now()
	var menu *domain.DailyMenu
	err := s.store.Snapshot(ctx, func(snap Snapshot) error {
		if _, err := snap.GetUserByID(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return err
			}
			return fmt.Errorf("fetch user: %w", err)
		}
		var err error
		menu, err = s.engine.Generate(ctx, snap, userID, size, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	observeMenu(menu, elapsed)

	log.Info().
		Str("anchor_source", string(menu.AnchorSource)).
		Int("suggestions", len(menu.Suggestions)).
		Int64("latency_ms", elapsed.Milliseconds()).
		Msg("daily menu generated")

	// Store menu in cache
	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, size, date, menu); err != nil {
			log.Warn().Err(err).Msg("cache set failed")
		}
	}

	return &domain.DailyMenuResult{Menu: menu, CacheHit: false}, nil
}

func observeMenu(menu *domain.DailyMenu, elapsed time.Duration) {
	metrics.MenuGenerationDuration.WithLabelValues(string(menu.AnchorSource)).Observe(elapsed.Seconds())
	metrics.MenuSuggestions.Observe(float64(len(menu.Suggestions)))
	for _, s := range menu.Suggestions {
		for _, strategy := range s.Strategies {
			metrics.StrategyContributions.WithLabelValues(string(strategy)).Inc()
		}
	}
}

func (s *Service) GetBatchDailyMenus(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	start := time.Now()

	// Fetch paginated user IDs
	userIDs, err := s.store.GetUserIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch user ids: %w", err)
	}

	// Fetch total user
	totalUsers, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count user: %w", err)
	}

	// Process users concurrently with bounded worker pool
	results := make([]domain.BatchUserResult, len(userIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency) // semaphore

	for i, userID := range userIDs {
		wg.Add(1)
		go func(idx int, uid int64) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.processUserForBatch(ctx, uid)
		}(i, userID)
	}
	wg.Wait()

	// summary
	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Page:       page,
		Limit:      limit,
		TotalUsers: totalUsers,
		Results:    results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: s.now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// Generates the default-size menu for a single user, capturing errors.
func (s *Service) processUserForBatch(ctx context.Context, userID int64) domain.BatchUserResult {
	result, err := s.GetDailyMenu(ctx, userID, 0)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("user_id", userID).Msg("batch: menu failed")
		code, msg := CategorizeError(err)
		return domain.BatchUserResult{
			UserID:  userID,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}

	return domain.BatchUserResult{
		UserID: userID,
		Menu:   result.Menu,
		Status: domain.StatusSuccess,
	}
}

// RecordCooked stores a cooked entry with the recipe's current title and
// clears the user's cached menus.
func (s *Service) RecordCooked(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return err
	}
	recipe, err := s.store.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := s.store.AddCookedHistory(ctx, userID, recipe, s.now()); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Add favorite for a user and clear user's cache
func (s *Service) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.store.GetRecipeByID(ctx, recipeID); err != nil {
		return err
	}
	if err := s.store.AddFavorite(ctx, userID, recipeID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.ClearUserCache(ctx, userID); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("user_id", userID).Msg("cache invalidation failed")
	}
}

// CategorizeError maps an error to a stable code and a client-safe message.
func CategorizeError(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found", "user not found"
	case errors.Is(err, domain.ErrRecipeNotFound):
		return "recipe_not_found", "recipe not found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout", "request timed out"
	default:
		return "internal_error", "an unexpected error occurred"
	}
}
