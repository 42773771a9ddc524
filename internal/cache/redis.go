package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
	"github.com/actuallystonmai/daily-menu-service/internal/logging"
	"github.com/actuallystonmai/daily-menu-service/internal/metrics"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

const (
	defaultTTL   = 10 * time.Minute
	tripFailures = 5
	breakerName  = "menu-cache"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
	cb     *gobreaker.CircuitBreaker[any]
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl, cb: newBreaker()}
}

// newBreaker opens after tripFailures consecutive redis errors.
func newBreaker() *gobreaker.CircuitBreaker[any] {
	metrics.CacheBreakerState.Set(stateValue(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripFailures
		},
		// a cache miss is a healthy answer
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[cache] breaker state change")
			metrics.CacheBreakerState.Set(stateValue(to))
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func buildKey(userID int64, size int, date string) string {
	return fmt.Sprintf("menu:user:%d:size:%d:date:%s", userID, size, date)
}

func userPattern(userID int64) string {
	return fmt.Sprintf("menu:user:%d:*", userID)
}

// Get daily menu from cache; a miss returns nil, nil
func (c *Cache) Get(ctx context.Context, userID int64, size int, date string) (*domain.DailyMenu, error) {
	key := buildKey(userID, size, date)
	res, err := c.cb.Execute(func() (any, error) {
		return c.client.Get(ctx, key).Bytes()
	})
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily menu from cache: %w", err)
	}

	var menu domain.DailyMenu
	if err := json.Unmarshal(res.([]byte), &menu); err != nil {
		return nil, fmt.Errorf("failed to unmarshal daily menu %s: %w", key, err)
	}

	return &menu, nil
}

// Store daily menu in cache
func (c *Cache) Set(ctx context.Context, userID int64, size int, date string, menu *domain.DailyMenu) error {
	key := buildKey(userID, size, date)
	val, err := json.Marshal(menu)
	if err != nil {
		return fmt.Errorf("failed to marshal daily menu: %w", err)
	}

	_, err = c.cb.Execute(func() (any, error) {
		return nil, c.client.Set(ctx, key, val, c.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to set daily menu in cache: %w", err)
	}

	return nil
}

// Clear user cache: used when cooked history or favorites change
func (c *Cache) ClearUserCache(ctx context.Context, userID int64) error {
	_, err := c.cb.Execute(func() (any, error) {
		iter := c.client.Scan(ctx, 0, userPattern(userID), 100).Iterator()
		for iter.Next(ctx) {
			if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
				return nil, fmt.Errorf("cache delete %s: %w", iter.Val(), err)
			}
		}
		return nil, iter.Err()
	})
	return err
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) BreakerState() gobreaker.State {
	return c.cb.State()
}
