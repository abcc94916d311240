package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fridgechef/internal/pkg/common"

	"github.com/jmoiron/sqlx"
)

// RecipeRepo stores recipes per user.
type RecipeRepo struct {
	db *sqlx.DB
}

// NewRecipeRepo creates a recipe repository.
func NewRecipeRepo(db *sqlx.DB) *RecipeRepo {
	return &RecipeRepo{db: db}
}

// Create inserts a recipe, assigning an ID when absent.
func (r *RecipeRepo) Create(ctx context.Context, recipe *common.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = common.GenerateUUID()
	}
	query := `INSERT INTO recipes (id, user_id, source_url, title, image_url, ingredients, steps, servings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		recipe.ID, recipe.UserID, recipe.SourceURL, recipe.Title, recipe.ImageURL,
		jsonColumn{dest: recipe.Ingredients}, jsonColumn{dest: recipe.Steps}, recipe.Servings)
	if err != nil {
		return fmt.Errorf("recipeRepo.Create: %w", err)
	}
	return nil
}

// GetByID fetches one of the user's recipes.
func (r *RecipeRepo) GetByID(ctx context.Context, userID, id string) (*common.Recipe, error) {
	row := r.db.QueryRowxContext(ctx,
		`SELECT id, user_id, source_url, title, image_url, ingredients, steps, servings
		 FROM recipes WHERE id = $1 AND user_id = $2`, id, userID)
	recipe, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("recipeRepo.GetByID: %w", err)
	}
	return recipe, nil
}

// ListByUser returns all of a user's recipes, newest first.
func (r *RecipeRepo) ListByUser(ctx context.Context, userID string) ([]common.Recipe, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT id, user_id, source_url, title, image_url, ingredients, steps, servings
		 FROM recipes WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("recipeRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	recipes := []common.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("recipeRepo.ListByUser: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, rows.Err()
}

// Delete removes one of the user's recipes.
func (r *RecipeRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("recipeRepo.Delete: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*common.Recipe, error) {
	var recipe common.Recipe
	err := row.Scan(
		&recipe.ID, &recipe.UserID, &recipe.SourceURL, &recipe.Title, &recipe.ImageURL,
		&jsonColumn{dest: &recipe.Ingredients}, &jsonColumn{dest: &recipe.Steps}, &recipe.Servings)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}
