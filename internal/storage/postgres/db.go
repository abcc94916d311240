// Package postgres persists recipes, kitchen inventory, and grocery lists.
package postgres

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// NewDB opens a PostgreSQL connection pool.
func NewDB(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}

// Migrate creates the schema when missing. Statements are idempotent, so
// startup can run this unconditionally.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS recipes (
			id          UUID PRIMARY KEY,
			user_id     TEXT NOT NULL,
			source_url  TEXT NOT NULL DEFAULT '',
			title       TEXT NOT NULL,
			image_url   TEXT NOT NULL DEFAULT '',
			ingredients JSONB NOT NULL DEFAULT '[]',
			steps       JSONB NOT NULL DEFAULT '[]',
			servings    INT NOT NULL DEFAULT 4,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_user_id ON recipes (user_id)`,
		`CREATE TABLE IF NOT EXISTS kitchen_items (
			id         UUID PRIMARY KEY,
			user_id    TEXT NOT NULL,
			name       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_kitchen_items_user_id ON kitchen_items (user_id)`,
		`CREATE TABLE IF NOT EXISTS grocery_lists (
			id         UUID PRIMARY KEY,
			user_id    TEXT NOT NULL,
			recipe_id  UUID,
			title      TEXT NOT NULL,
			groups     JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_grocery_lists_user_id ON grocery_lists (user_id)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}
	return nil
}

// jsonColumn round-trips an arbitrary value through a JSONB column.
type jsonColumn struct {
	dest any
}

func (j jsonColumn) Value() (driver.Value, error) {
	return json.Marshal(j.dest)
}

func (j *jsonColumn) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, j.dest)
	case string:
		return json.Unmarshal([]byte(v), j.dest)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
