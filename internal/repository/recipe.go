package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
	"github.com/jackc/pgx/v5"
)

const recipeSelect = `SELECT r.id, r.title, r.description, r.image_url,
		r.category_id, c.name, r.difficulty, r.prepare_minutes, r.cook_minutes,
		r.view_count, r.visibility, r.deleted, r.owner_id, u.display_name, r.created_at
	FROM recipes r
	JOIN users u ON u.id = r.owner_id
	LEFT JOIN categories c ON c.id = r.category_id`

func scanRecipe(row pgx.Row) (domain.Recipe, error) {
	var (
		rec          domain.Recipe
		categoryID   *int64
		categoryName *string
		difficulty   *string
		visibility   string
	)
	err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.ImageURL,
		&categoryID, &categoryName, &difficulty, &rec.PrepareMinutes, &rec.CookMinutes,
		&rec.ViewCount, &visibility, &rec.Deleted, &rec.OwnerID, &rec.OwnerName, &rec.CreatedAt)
	if err != nil {
		return rec, err
	}
	if categoryID != nil && categoryName != nil {
		rec.Category = &domain.Category{ID: *categoryID, Name: *categoryName}
	}
	if difficulty != nil {
		rec.Difficulty = domain.Difficulty(*difficulty)
	}
	rec.Visibility = domain.Visibility(visibility)
	return rec, nil
}

func (r *Repository) queryRecipes(ctx context.Context, sql string, args ...any) ([]domain.Recipe, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var items []domain.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over recipes: %w", err)
	}

	if err := r.attachIngredients(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) attachIngredients(ctx context.Context, items []domain.Recipe) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, len(items))
	pos := make(map[int64]int, len(items))
	for i, rec := range items {
		ids[i] = rec.ID
		pos[rec.ID] = i
	}

	rows, err := r.db.Query(ctx,
		`SELECT recipe_id, name, quantity
		FROM recipe_ingredients
		WHERE recipe_id = ANY($1)
		ORDER BY recipe_id, position, id`, ids,
	)
	if err != nil {
		return fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			recipeID int64
			ing      domain.Ingredient
		)
		if err := rows.Scan(&recipeID, &ing.Name, &ing.Quantity); err != nil {
			return fmt.Errorf("scan ingredient: %w", err)
		}
		if i, ok := pos[recipeID]; ok {
			items[i].Ingredients = append(items[i].Ingredients, ing)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate over ingredients: %w", err)
	}
	return nil
}

// Catalog returns every public, non-deleted recipe ordered by id.
func (r *Repository) Catalog(ctx context.Context) ([]domain.Recipe, error) {
	items, err := r.queryRecipes(ctx, recipeSelect+`
		WHERE r.deleted = false AND r.visibility = 'PUBLIC'
		ORDER BY r.id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return items, nil
}

func (r *Repository) PopularRecipes(ctx context.Context, limit int) ([]domain.Recipe, error) {
	items, err := r.queryRecipes(ctx, recipeSelect+`
		WHERE r.deleted = false AND r.visibility = 'PUBLIC'
		ORDER BY r.view_count DESC, r.id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("popular recipes: %w", err)
	}
	return items, nil
}

func (r *Repository) GetRecipeByID(ctx context.Context, recipeID int64) (*domain.Recipe, error) {
	rec, err := scanRecipe(r.db.QueryRow(ctx, recipeSelect+` WHERE r.id = $1 AND r.deleted = false`, recipeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("query recipe id=%d: %w", recipeID, err)
	}
	return &rec, nil
}

// recipesByIDs loads recipes regardless of visibility, keyed by id.
func (r *Repository) recipesByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Recipe, error) {
	out := make(map[int64]*domain.Recipe, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	items, err := r.queryRecipes(ctx, recipeSelect+` WHERE r.id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		out[items[i].ID] = &items[i]
	}
	return out, nil
}
