// Package engine builds the daily menu: it picks an anchor recipe for the
// user, scores candidates with content, collaborative and popularity
// strategies, applies personalization bonuses and renders a ranked list.
//
// All state lives in a single Generate call. An Engine value only holds
// configuration and the immutable classifier, so it is safe for concurrent use.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/actuallystonmai/daily-menu-service/internal/classifier"
	"github.com/actuallystonmai/daily-menu-service/internal/domain"
	"github.com/actuallystonmai/daily-menu-service/internal/logging"
)

// Source is the read side the engine needs. Implementations should serve
// every call of one Generate from the same snapshot.
type Source interface {
	// Catalog returns recipes with category, owner and ingredients loaded.
	Catalog(ctx context.Context) ([]domain.Recipe, error)
	// CookedHistory returns the user's history, most recent first.
	CookedHistory(ctx context.Context, userID int64) ([]domain.CookedHistory, error)
	RecentlyCookedRecipeIDs(ctx context.Context, userID int64, since time.Time) ([]int64, error)
	// Favorites returns the user's favorites, most recent first.
	Favorites(ctx context.Context, userID int64) ([]domain.Favorite, error)
	FavoritesByRecipe(ctx context.Context, recipeID int64) ([]domain.Favorite, error)
	// ActiveFavoriteRecipeIDs returns one id per favorite row of the given
	// users, limited to recipes that are still public and not deleted.
	ActiveFavoriteRecipeIDs(ctx context.Context, userIDs []int64) ([]int64, error)
	// PopularRecipes returns public, non-deleted recipes by view count descending.
	PopularRecipes(ctx context.Context, limit int) ([]domain.Recipe, error)
}

type Config struct {
	DefaultSize         int
	MaxSize             int
	FreshnessWindowDays int
	PopularityCeiling   int
}

func DefaultConfig() Config {
	return Config{
		DefaultSize:         6,
		MaxSize:             12,
		FreshnessWindowDays: 3,
		PopularityCeiling:   20,
	}
}

type Engine struct {
	cfg        Config
	classifier *classifier.Classifier
}

func New(cfg Config, c *classifier.Classifier) *Engine {
	def := DefaultConfig()
	if cfg.DefaultSize <= 0 {
		cfg.DefaultSize = def.DefaultSize
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = def.MaxSize
	}
	if cfg.PopularityCeiling <= 0 {
		cfg.PopularityCeiling = def.PopularityCeiling
	}
	if cfg.FreshnessWindowDays < 0 {
		cfg.FreshnessWindowDays = 0
	}
	if c == nil {
		c = classifier.New(nil)
	}
	return &Engine{cfg: cfg, classifier: c}
}

// ClampSize maps non-positive sizes to the default and caps the rest at MaxSize.
func (e *Engine) ClampSize(size int) int {
	if size <= 0 {
		return e.cfg.DefaultSize
	}
	if size > e.cfg.MaxSize {
		return e.cfg.MaxSize
	}
	return size
}

// Generate produces the daily menu for userID. It only fails when src does;
// missing data yields a NO_DATA menu or a popularity-seeded anchor instead.
func (e *Engine) Generate(ctx context.Context, src Source, userID int64, size int, now time.Time) (*domain.DailyMenu, error) {
	logger := logging.Ctx(ctx).With().Str("component", "engine").Int64("user_id", userID).Logger()
	size = e.ClampSize(size)

	catalog, err := src.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	index := buildCandidateIndex(catalog)
	if index.empty() {
		logger.Debug().Msg("no visible recipes")
		return e.noDataMenu(now), nil
	}

	histories, err := src.CookedHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch cooked history: %w", err)
	}
	favorites, err := src.Favorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch favorites: %w", err)
	}

	cutoff := now.AddDate(0, 0, -e.cfg.FreshnessWindowDays)
	recentIDs, err := src.RecentlyCookedRecipeIDs(ctx, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("fetch recently cooked: %w", err)
	}
	excluded := make(map[int64]struct{}, len(recentIDs))
	for _, id := range recentIDs {
		excluded[id] = struct{}{}
	}

	anchor := selectAnchor(histories, favorites, index)
	source := anchorSource(anchor, histories, favorites)
	if anchor == nil {
		anchor = index.leastViewed()
		source = domain.AnchorPopularitySeed
	}

	acc := newAccumulator()
	scoreContentBased(acc, anchor, index.recipes, excluded)
	if err := scoreCollaborative(ctx, src, acc, userID, anchor, index, excluded); err != nil {
		return nil, err
	}
	if err := scorePopularity(ctx, src, acc, index, e.popularityLimit(size)); err != nil {
		return nil, err
	}

	favorite := favoriteCategory(histories, favorites)
	e.enrich(acc, excluded, favorite)

	menu := &domain.DailyMenu{
		AnchorSource:        source,
		FreshnessWindowDays: e.cfg.FreshnessWindowDays,
		GeneratedDate:       now.UTC().Format(time.DateOnly),
		Suggestions:         acc.render(size),
	}
	card := domain.NewRecipeCard(anchor)
	slot := e.classifier.Classify(anchor)
	menu.AnchorRecipe = &card
	menu.AnchorMealType = &slot
	if favorite != nil {
		name := favorite.Name
		menu.FavoriteCategoryName = &name
	}

	logger.Debug().
		Int64("anchor_id", anchor.ID).
		Str("anchor_source", string(source)).
		Int("candidates", len(index.recipes)).
		Int("scored", len(acc.order)).
		Int("suggestions", len(menu.Suggestions)).
		Msg("daily menu generated")

	return menu, nil
}

func (e *Engine) popularityLimit(size int) int {
	return min(max(size, e.cfg.DefaultSize)*2, e.cfg.PopularityCeiling)
}

func (e *Engine) noDataMenu(now time.Time) *domain.DailyMenu {
	return &domain.DailyMenu{
		AnchorSource:        domain.AnchorNoData,
		FreshnessWindowDays: e.cfg.FreshnessWindowDays,
		GeneratedDate:       now.UTC().Format(time.DateOnly),
		Suggestions:         []domain.Suggestion{},
	}
}
