package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/actuallystonmai/daily-menu-service/internal/cache"
	"github.com/actuallystonmai/daily-menu-service/internal/classifier"
	"github.com/actuallystonmai/daily-menu-service/internal/config"
	"github.com/actuallystonmai/daily-menu-service/internal/engine"
	"github.com/actuallystonmai/daily-menu-service/internal/handler"
	"github.com/actuallystonmai/daily-menu-service/internal/logging"
	"github.com/actuallystonmai/daily-menu-service/internal/repository"
	"github.com/actuallystonmai/daily-menu-service/internal/router"
	"github.com/actuallystonmai/daily-menu-service/internal/rules"
	"github.com/actuallystonmai/daily-menu-service/internal/service"
	"github.com/actuallystonmai/daily-menu-service/migrations"
	"github.com/actuallystonmai/daily-menu-service/seeds"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	log := logging.With("main")

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.Database.PoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("database not ready")
	}
	log.Info().Msg("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrations.Down(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate down")
		}
		log.Info().Msg("migrations dropped")
		return
	}

	if err := migrations.Up(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate up")
	}
	log.Info().Msg("migrations applied")

	// ------------ Setup Seed Data ---------------
	if err := checkSeed(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to check seed")
	}

	// ------------ Redis ---------------
	var menuCache service.MenuCache
	if cfg.Redis.Enabled {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse redis url")
		}
		client := redis.NewClient(opts)
		defer client.Close()

		c := cache.NewCache(client, cfg.Redis.CacheTTL)
		if err := c.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, continuing")
		} else {
			log.Info().Msg("connected to Redis")
		}
		menuCache = c
	}

	// ------------ Engine ---------------
	dataset, err := rules.Load(cfg.Rules.Path)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.Rules.Path).Msg("failed to load meal slot rules, using defaults")
	}
	eng := engine.New(engine.Config{
		DefaultSize:         cfg.Engine.DefaultSize,
		MaxSize:             cfg.Engine.MaxSize,
		FreshnessWindowDays: cfg.Engine.FreshnessWindowDays,
		PopularityCeiling:   cfg.Engine.PopularityCeiling,
	}, classifier.New(dataset))

	repo := repository.New(pool)
	svc := service.NewService(service.NewRepositoryStore(repo), menuCache, eng)
	h := handler.NewHandler(svc)

	// ---------------- Server --------------------
	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.Setup(h, router.Options{
			RequestTimeout:    cfg.Server.RequestTimeout,
			RateLimitRequests: cfg.Server.RateLimitRequests,
			RateLimitWindow:   cfg.Server.RateLimitWindow,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	log := logging.With("main")
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info().Int("attempt", i+1).Msg("waiting for database")
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("check users count: %w", err)
	}
	if count > 0 {
		logging.Info().Int("users", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool)
}
