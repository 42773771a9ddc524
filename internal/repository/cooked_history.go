package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
)

const cookedHistoryLimit = 200

// CookedHistory returns the user's most recent cooked entries, newest first.
func (r *Repository) CookedHistory(ctx context.Context, userID int64) ([]domain.CookedHistory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, recipe_id, cooked_at, title_snapshot
		FROM cooked_history
		WHERE user_id = $1
		ORDER BY cooked_at DESC, id DESC
		LIMIT $2`,
		userID, cookedHistoryLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("get cooked history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var (
		items     []domain.CookedHistory
		recipeIDs []int64
		refs      []*int64
	)
	for rows.Next() {
		var (
			item     domain.CookedHistory
			recipeID *int64
		)
		if err := rows.Scan(&item.ID, &item.UserID, &recipeID, &item.CookedAt, &item.TitleSnapshot); err != nil {
			return nil, fmt.Errorf("scan cooked history item: %w", err)
		}
		if recipeID != nil {
			recipeIDs = append(recipeIDs, *recipeID)
		}
		items = append(items, item)
		refs = append(refs, recipeID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over cooked history items: %w", err)
	}

	recipes, err := r.recipesByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load cooked recipes: %w", err)
	}
	for i, ref := range refs {
		if ref != nil {
			items[i].Recipe = recipes[*ref]
		}
	}
	return items, nil
}

func (r *Repository) RecentlyCookedRecipeIDs(ctx context.Context, userID int64, since time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT recipe_id
		FROM cooked_history
		WHERE user_id = $1 AND recipe_id IS NOT NULL AND cooked_at >= $2`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("get recently cooked for user %d: %w", userID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan recently cooked id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recently cooked ids: %w", err)
	}
	return ids, nil
}

// AddCookedHistory records that the user cooked recipe, keeping its current title.
func (r *Repository) AddCookedHistory(ctx context.Context, userID int64, recipe *domain.Recipe, cookedAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO cooked_history (user_id, recipe_id, cooked_at, title_snapshot)
		VALUES ($1, $2, $3, $4)`,
		userID, recipe.ID, cookedAt, recipe.Title,
	)
	if err != nil {
		return fmt.Errorf("insert cooked history user=%d recipe=%d: %w", userID, recipe.ID, err)
	}
	return nil
}
