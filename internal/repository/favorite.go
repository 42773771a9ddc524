package repository

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
)

const favoritesLimit = 200

// Favorites returns the user's favorites, newest first.
func (r *Repository) Favorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	items, err := r.queryFavorites(ctx,
		`SELECT id, user_id, recipe_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, favoritesLimit)
	if err != nil {
		return nil, fmt.Errorf("get favorites for user %d: %w", userID, err)
	}
	return items, nil
}

func (r *Repository) FavoritesByRecipe(ctx context.Context, recipeID int64) ([]domain.Favorite, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, recipe_id, created_at
		FROM favorites
		WHERE recipe_id = $1
		ORDER BY id`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get favorites of recipe %d: %w", recipeID, err)
	}
	defer rows.Close()

	// only the user side matters to callers; the recipe is the one asked for
	var items []domain.Favorite
	for rows.Next() {
		var (
			f  domain.Favorite
			id int64
		)
		if err := rows.Scan(&f.ID, &f.UserID, &id, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		f.Recipe = &domain.Recipe{ID: id}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return items, nil
}

// ActiveFavoriteRecipeIDs returns one recipe id per favorite of the given
// users, skipping recipes that are deleted or not public.
func (r *Repository) ActiveFavoriteRecipeIDs(ctx context.Context, userIDs []int64) ([]int64, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT f.recipe_id
		FROM favorites f
		JOIN recipes r ON r.id = f.recipe_id
		WHERE f.user_id = ANY($1) AND r.deleted = false AND r.visibility = 'PUBLIC'
		ORDER BY f.id`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("get active favorites for %d users: %w", len(userIDs), err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite recipe id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite recipe ids: %w", err)
	}
	return ids, nil
}

// AddFavorite is idempotent per user and recipe.
func (r *Repository) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO favorites (user_id, recipe_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, recipe_id) DO NOTHING`,
		userID, recipeID,
	)
	if err != nil {
		return fmt.Errorf("insert favorite user=%d recipe=%d: %w", userID, recipeID, err)
	}
	return nil
}

func (r *Repository) queryFavorites(ctx context.Context, sql string, args ...any) ([]domain.Favorite, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		items     []domain.Favorite
		recipeIDs []int64
	)
	for rows.Next() {
		var (
			f        domain.Favorite
			recipeID int64
		)
		if err := rows.Scan(&f.ID, &f.UserID, &recipeID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		f.Recipe = &domain.Recipe{ID: recipeID}
		items = append(items, f)
		recipeIDs = append(recipeIDs, recipeID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}

	recipes, err := r.recipesByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load favorite recipes: %w", err)
	}
	for i := range items {
		items[i].Recipe = recipes[items[i].Recipe.ID]
	}
	return items, nil
}
