// Package migrations applies the database schema. Statements are idempotent
// (CREATE IF NOT EXISTS) and run in order on every start.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		image_ref TEXT NOT NULL DEFAULT '',
		favorite BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT NOT NULL,
		password TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL DEFAULT '',
		birth_date TEXT NOT NULL DEFAULT '',
		street TEXT NOT NULL DEFAULT '',
		number TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT '',
		commune TEXT NOT NULL DEFAULT '',
		profile_image_ref TEXT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique ON users (email)`,
	`CREATE INDEX IF NOT EXISTS products_favorite_idx ON products (favorite) WHERE favorite`,
}

// Apply runs every migration statement against db.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
