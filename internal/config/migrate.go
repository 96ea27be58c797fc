package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migration is a single versioned schema step. Steps are applied in
// order and recorded in schema_migrations; already-applied versions are
// skipped on later startups.
type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create users",
		sql: `CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('customer', 'admin')) DEFAULT 'customer',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		version: 2,
		name:    "create products",
		sql: `CREATE TABLE IF NOT EXISTS products (
			seq BIGSERIAL,
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
			category TEXT NOT NULL CHECK (category IN ('Classic', 'Signature', 'Vegan', 'Limited')),
			image_url TEXT NOT NULL DEFAULT '',
			inventory INTEGER NOT NULL CHECK (inventory >= 0) DEFAULT 0,
			tags TEXT[] NOT NULL DEFAULT '{}'
		)`,
	},
	{
		version: 3,
		name:    "create orders",
		sql: `CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			items JSONB NOT NULL,
			total DOUBLE PRECISION NOT NULL CHECK (total >= 0),
			status TEXT NOT NULL CHECK (status IN ('PENDING', 'PREPARING', 'READY', 'COMPLETED')) DEFAULT 'PENDING',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
		CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,
	},
}

// Migrate applies pending schema migrations. Run explicitly at startup.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("unable to create schema_migrations table: %w", err)
	}

	var current int
	err = db.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("unable to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if _, err := db.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		if _, err := db.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.version, m.name); err != nil {
			return fmt.Errorf("unable to record migration %d: %w", m.version, err)
		}
		log.Printf("Applied migration %d: %s", m.version, m.name)
	}

	return nil
}
