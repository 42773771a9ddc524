package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MenuGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "daily_menu_generation_duration_seconds",
			Help:    "Time spent generating a daily menu, including data reads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"anchor_source"},
	)

	MenuSuggestions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "daily_menu_suggestions",
			Help:    "Number of suggestions returned per daily menu",
			Buckets: []float64{0, 1, 2, 4, 6, 8, 10, 12},
		},
	)

	StrategyContributions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_menu_strategy_contributions_total",
			Help: "Returned suggestions per contributing strategy tag",
		},
		[]string{"strategy"},
	)

	MenuCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "daily_menu_cache_hits_total",
			Help: "Daily menus served from cache",
		},
	)

	MenuCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "daily_menu_cache_misses_total",
			Help: "Daily menus generated because the cache had no entry",
		},
	)

	CacheBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "daily_menu_cache_breaker_state",
			Help: "Cache circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
	)

	RulesLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "meal_slot_rules_loaded",
			Help: "Meal slot classification rules loaded at startup, by kind",
		},
		[]string{"kind"},
	)
)
