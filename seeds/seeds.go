package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/actuallystonmai/daily-menu-service/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	userCount    = 20
	recipeCount  = 60
	cookedCount  = 240
	favoriteRows = 120
)

type seedRecipe struct {
	title       string
	description string
	category    string
	ingredients []string
}

var catalog = []seedRecipe{
	{"Fluffy Pancakes", "Buttermilk pancakes with maple syrup", "Breakfast", []string{"flour", "buttermilk", "eggs", "maple syrup"}},
	{"Overnight Oats", "Creamy oats soaked with yogurt", "Breakfast", []string{"rolled oats", "yogurt", "milk", "honey"}},
	{"Spinach Omelette", "Folded eggs with spinach and cheese", "Breakfast", []string{"eggs", "spinach", "cheese", "butter"}},
	{"Avocado Toast", "Sourdough topped with smashed avocado", "Brunch", []string{"bread", "avocado", "lemon", "chili flakes"}},
	{"Caesar Salad", "Romaine with parmesan and croutons", "Salad", []string{"lettuce", "parmesan", "croutons", "anchovy"}},
	{"Greek Salad", "Tomato, cucumber and feta", "Salad", []string{"tomato", "cucumber", "feta", "olive oil"}},
	{"Tuna Sandwich", "Classic tuna mayo on rye", "Sandwich", []string{"tuna", "bread", "mayonnaise", "celery"}},
	{"Chicken Wrap", "Grilled chicken in a tortilla", "Sandwich", []string{"chicken breast", "tortilla", "lettuce", "yogurt"}},
	{"Tomato Soup", "Roasted tomato soup with basil", "Soup", []string{"tomato", "onion", "garlic", "basil"}},
	{"Miso Soup", "Light broth with tofu and seaweed", "Soup", []string{"miso", "tofu", "seaweed", "spring onion"}},
	{"Beef Stew", "Slow cooked beef with root vegetables", "Main Course", []string{"beef", "carrot", "potato", "onion"}},
	{"Chicken Curry", "Spiced curry with coconut milk", "Main Course", []string{"chicken thigh", "coconut milk", "curry paste", "rice"}},
	{"Roast Salmon", "Oven roasted salmon with lemon", "Main Course", []string{"salmon", "lemon", "garlic", "dill"}},
	{"Spaghetti Carbonara", "Pasta with egg, cheese and pancetta", "Pasta", []string{"spaghetti", "eggs", "parmesan", "pancetta"}},
	{"Beef Lasagna", "Layered pasta with ragu", "Pasta", []string{"lasagna sheets", "beef", "tomato", "mozzarella"}},
	{"Pesto Penne", "Penne tossed in basil pesto", "Pasta", []string{"penne", "basil", "pine nuts", "parmesan"}},
	{"Grilled Pork Chops", "Chops with apple glaze", "Grill", []string{"pork", "apple", "garlic", "thyme"}},
	{"Steak Frites", "Seared steak with fries", "Grill", []string{"beef", "potato", "butter", "garlic"}},
	{"Hummus Dip", "Chickpea dip with tahini", "Snack", []string{"chickpeas", "tahini", "lemon", "garlic"}},
	{"Nachos", "Tortilla chips with cheese and salsa", "Appetizer", []string{"tortilla chips", "cheese", "tomato", "jalapeno"}},
	{"Chicken Skewers", "Marinated chicken on skewers", "Appetizer", []string{"chicken breast", "soy sauce", "garlic", "honey"}},
	{"Chocolate Brownies", "Fudgy brownies", "Dessert", []string{"cocoa powder", "butter", "sugar", "eggs"}},
	{"Vanilla Pudding", "Silky vanilla custard", "Dessert", []string{"milk", "vanilla extract", "sugar", "cornstarch"}},
	{"Banana Bread", "Moist loaf with ripe bananas", "Baking", []string{"banana", "flour", "butter", "sugar"}},
	{"Oat Cookies", "Chewy oat and raisin cookies", "Baking", []string{"rolled oats", "flour", "raisins", "butter"}},
	{"Fried Rice", "Leftover rice stir fried with egg", "", []string{"rice", "eggs", "soy sauce", "spring onion"}},
	{"Veggie Stir Fry", "Quick vegetables with soy glaze", "", []string{"broccoli", "carrot", "soy sauce", "garlic"}},
}

var difficulties = []string{"EASY", "MEDIUM", "HARD"}

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	log := logging.With("seed")
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Info().Msg("truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE favorites, cooked_history, recipe_ingredients, recipes, categories, users RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Info().Int("count", userCount).Msg("inserting users")
	if err := seedUsers(ctx, pool, rng, userCount); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Info().Msg("inserting categories")
	categoryIDs, err := seedCategories(ctx, pool)
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	log.Info().Int("count", recipeCount).Msg("inserting recipes")
	if err := seedRecipes(ctx, pool, rng, categoryIDs, recipeCount); err != nil {
		return fmt.Errorf("seed recipes: %w", err)
	}

	log.Info().Msg("inserting ingredients")
	if err := seedIngredients(ctx, pool, recipeCount); err != nil {
		return fmt.Errorf("seed ingredients: %w", err)
	}

	log.Info().Msg("inserting cooked history")
	if err := seedCookedHistory(ctx, pool, rng, cookedCount); err != nil {
		return fmt.Errorf("seed cooked history: %w", err)
	}

	log.Info().Msg("inserting favorites")
	if err := seedFavorites(ctx, pool, rng, favoriteRows); err != nil {
		return fmt.Errorf("seed favorites: %w", err)
	}

	log.Info().Msg("seeding complete")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	names := []string{"Ana", "Ben", "Chai", "Dara", "Eli", "Fah", "Gus", "Hana", "Ivo", "June"}

	rows := []string{}
	args := []any{}

	for i := range n {
		name := fmt.Sprintf("%s %d", names[i%len(names)], i+1)
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(365))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
		args = append(args, name, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO users (display_name, created_at) VALUES " + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

// seedCategories inserts every distinct catalog category and returns their ids.
func seedCategories(ctx context.Context, pool *pgxpool.Pool) (map[string]int64, error) {
	ids := make(map[string]int64)
	for _, r := range catalog {
		if r.category == "" {
			continue
		}
		if _, ok := ids[r.category]; ok {
			continue
		}
		var id int64
		if err := pool.QueryRow(ctx,
			`INSERT INTO categories (name) VALUES ($1) RETURNING id`, r.category,
		).Scan(&id); err != nil {
			return nil, fmt.Errorf("insert category %q: %w", r.category, err)
		}
		ids[r.category] = id
	}
	return ids, nil
}

func seedRecipes(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, categoryIDs map[string]int64, n int) error {
	rows := []string{}
	args := []any{}

	for i := range n {
		src := catalog[i%len(catalog)]
		title := src.title
		if i >= len(catalog) {
			title = fmt.Sprintf("%s %d", title, i/len(catalog)+1)
		}

		var categoryID *int64
		if id, ok := categoryIDs[src.category]; ok {
			categoryID = &id
		}

		difficulty := weightedChoice(rng, difficulties, []float64{0.5, 0.35, 0.15})
		prepare := 5 + rng.Intn(25)
		cook := 5 + rng.Intn(60)
		views := viewCount(rng)
		visibility := weightedChoice(rng, []string{"PUBLIC", "SHARED", "PRIVATE"}, []float64{0.85, 0.1, 0.05})
		deleted := rng.Float64() < 0.03
		ownerID := int64(rng.Intn(userCount) + 1)
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(730))

		base := len(args)
		placeholders := make([]string, 12)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		rows = append(rows, "("+strings.Join(placeholders, ", ")+")")
		args = append(args, title, src.description, fmt.Sprintf("https://img.example.com/recipes/%d.jpg", i+1),
			categoryID, difficulty, prepare, cook, views, visibility, deleted, ownerID, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO recipes (title, description, image_url, category_id, difficulty,
		prepare_minutes, cook_minutes, view_count, visibility, deleted, owner_id, created_at) VALUES ` +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedIngredients(ctx context.Context, pool *pgxpool.Pool, n int) error {
	rows := []string{}
	args := []any{}

	for i := range n {
		src := catalog[i%len(catalog)]
		for pos, name := range src.ingredients {
			base := len(args)
			rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
			args = append(args, int64(i+1), pos, name, "")
		}
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO recipe_ingredients (recipe_id, position, name, quantity) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedCookedHistory(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	rows := []string{}
	args := []any{}

	for range n {
		userID := skewedID(rng, 1.5, userCount)
		recipeID := skewedID(rng, 1.3, recipeCount)
		cookedAt := time.Now().Add(-time.Duration(rng.Intn(90*24)) * time.Hour)

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, (SELECT title FROM recipes WHERE id = $%d))",
			base+1, base+2, base+3, base+2))
		args = append(args, userID, recipeID, cookedAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO cooked_history (user_id, recipe_id, cooked_at, title_snapshot) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedFavorites(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	seen := make(map[[2]int64]bool)

	rows := []string{}
	args := []any{}

	for range n {
		userID := skewedID(rng, 1.5, userCount)
		recipeID := skewedID(rng, 1.3, recipeCount)

		key := [2]int64{userID, recipeID}
		if seen[key] {
			continue
		}
		seen[key] = true

		createdAt := time.Now().AddDate(0, 0, -rng.Intn(180))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, userID, recipeID, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO favorites (user_id, recipe_id, created_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

// skewedID favors low ids so a few users and recipes dominate activity.
func skewedID(rng *rand.Rand, exp float64, n int) int64 {
	id := int64(math.Ceil(math.Pow(rng.Float64(), exp) * float64(n)))
	return max(1, min(id, int64(n)))
}

func viewCount(rng *rand.Rand) int64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	return int64(math.Round(math.Pow(u, 2.0) * 5000))
}

func weightedChoice(rng *rand.Rand, choices []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}
