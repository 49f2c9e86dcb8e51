package database

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order at startup. Each entry runs at most once,
// tracked in the schema_migrations table.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(60) PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'USER',
		avatar_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS groups (
		id VARCHAR(60) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		created_by VARCHAR(60) NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS group_members (
		group_id VARCHAR(60) NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		user_id VARCHAR(60) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (group_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id VARCHAR(60) PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		user_id VARCHAR(60) REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id VARCHAR(60) PRIMARY KEY,
		payer_id VARCHAR(60) NOT NULL REFERENCES users(id),
		group_id VARCHAR(60) REFERENCES groups(id),
		category_id VARCHAR(60) REFERENCES categories(id),
		description VARCHAR(255) NOT NULL,
		amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
		split_type VARCHAR(20),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS splits (
		id VARCHAR(60) PRIMARY KEY,
		expense_id VARCHAR(60) NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
		user_id VARCHAR(60) NOT NULL REFERENCES users(id),
		amount NUMERIC(12,2) NOT NULL CHECK (amount > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS settlements (
		id VARCHAR(60) PRIMARY KEY,
		group_id VARCHAR(60) NOT NULL REFERENCES groups(id),
		sender_id VARCHAR(60) NOT NULL REFERENCES users(id),
		receiver_id VARCHAR(60) NOT NULL REFERENCES users(id),
		amount NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
		CONSTRAINT settlements_distinct_parties CHECK (sender_id <> receiver_id)
	)`,

	// One settlement row per unordered user pair per group.
	`CREATE UNIQUE INDEX IF NOT EXISTS settlements_pair_unique
		ON settlements (group_id, LEAST(sender_id, receiver_id), GREATEST(sender_id, receiver_id))`,

	`CREATE TABLE IF NOT EXISTS activities (
		id VARCHAR(60) PRIMARY KEY,
		action VARCHAR(20) NOT NULL,
		actor_id VARCHAR(60) NOT NULL REFERENCES users(id),
		target_id VARCHAR(60),
		group_id VARCHAR(60),
		amount NUMERIC(12,2),
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS expenses_group_idx ON expenses (group_id)`,
	`CREATE INDEX IF NOT EXISTS expenses_payer_idx ON expenses (payer_id)`,
	`CREATE INDEX IF NOT EXISTS splits_expense_idx ON splits (expense_id)`,
	`CREATE INDEX IF NOT EXISTS settlements_group_idx ON settlements (group_id)`,
	`CREATE INDEX IF NOT EXISTS activities_actor_idx ON activities (actor_id)`,
}

// Migrate applies all pending schema migrations.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, i+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
	}

	return nil
}
