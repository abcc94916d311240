package postgres

import (
	"context"
	"fmt"

	"fridgechef/internal/pkg/common"

	"github.com/jmoiron/sqlx"
)

// KitchenRepo stores fridge and pantry inventory per user.
type KitchenRepo struct {
	db *sqlx.DB
}

// NewKitchenRepo creates a kitchen inventory repository.
func NewKitchenRepo(db *sqlx.DB) *KitchenRepo {
	return &KitchenRepo{db: db}
}

// Create inserts one inventory item, assigning an ID when absent.
func (r *KitchenRepo) Create(ctx context.Context, userID string, item *common.KitchenInventoryItem) error {
	if item.ID == "" {
		item.ID = common.GenerateUUID()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kitchen_items (id, user_id, name) VALUES ($1, $2, $3)`,
		item.ID, userID, item.Name)
	if err != nil {
		return fmt.Errorf("kitchenRepo.Create: %w", err)
	}
	return nil
}

// ListByUser returns the user's inventory, oldest first.
func (r *KitchenRepo) ListByUser(ctx context.Context, userID string) ([]common.KitchenInventoryItem, error) {
	items := []common.KitchenInventoryItem{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT id, name FROM kitchen_items WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("kitchenRepo.ListByUser: %w", err)
	}
	return items, nil
}

// Delete removes one inventory item.
func (r *KitchenRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM kitchen_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("kitchenRepo.Delete: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
