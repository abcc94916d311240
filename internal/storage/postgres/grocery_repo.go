package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fridgechef/internal/pkg/common"

	"github.com/jmoiron/sqlx"
)

// GroceryListRepo stores saved shopping lists per user.
type GroceryListRepo struct {
	db *sqlx.DB
}

// NewGroceryListRepo creates a grocery list repository.
func NewGroceryListRepo(db *sqlx.DB) *GroceryListRepo {
	return &GroceryListRepo{db: db}
}

// Create inserts a grocery list, assigning an ID when absent.
func (r *GroceryListRepo) Create(ctx context.Context, list *common.GroceryList) error {
	if list.ID == "" {
		list.ID = common.GenerateUUID()
	}
	var recipeID any
	if list.RecipeID != "" {
		recipeID = list.RecipeID
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO grocery_lists (id, user_id, recipe_id, title, groups) VALUES ($1, $2, $3, $4, $5)`,
		list.ID, list.UserID, recipeID, list.Title, jsonColumn{dest: list.Groups})
	if err != nil {
		return fmt.Errorf("groceryListRepo.Create: %w", err)
	}
	return nil
}

// GetByID fetches one of the user's lists.
func (r *GroceryListRepo) GetByID(ctx context.Context, userID, id string) (*common.GroceryList, error) {
	list, err := scanGroceryList(r.db.QueryRowxContext(ctx,
		`SELECT id, user_id, COALESCE(recipe_id::text, ''), title, groups
		 FROM grocery_lists WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("groceryListRepo.GetByID: %w", err)
	}
	return list, nil
}

// ListByUser returns the user's lists, newest first.
func (r *GroceryListRepo) ListByUser(ctx context.Context, userID string) ([]common.GroceryList, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT id, user_id, COALESCE(recipe_id::text, ''), title, groups
		 FROM grocery_lists WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("groceryListRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	lists := []common.GroceryList{}
	for rows.Next() {
		list, err := scanGroceryList(rows)
		if err != nil {
			return nil, fmt.Errorf("groceryListRepo.ListByUser: %w", err)
		}
		lists = append(lists, *list)
	}
	return lists, rows.Err()
}

// Delete removes one of the user's lists.
func (r *GroceryListRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM grocery_lists WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("groceryListRepo.Delete: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanGroceryList(row rowScanner) (*common.GroceryList, error) {
	var list common.GroceryList
	err := row.Scan(&list.ID, &list.UserID, &list.RecipeID, &list.Title,
		&jsonColumn{dest: &list.Groups})
	if err != nil {
		return nil, err
	}
	return &list, nil
}
