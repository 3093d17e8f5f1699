package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	// SchemaVersion es la versión de esquema que entiende este binario.
	SchemaVersion int64 = 1

	mealsComponent = "meals"
)

const schemaVersionsTable = `
CREATE TABLE IF NOT EXISTS schema_versions (
	component  TEXT PRIMARY KEY,
	version    BIGINT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const schemaV1 = `
CREATE TABLE IF NOT EXISTS meals (
	seq           BIGSERIAL NOT NULL,
	id            UUID PRIMARY KEY,
	owner_user_id TEXT NOT NULL,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	occurred_at   TIMESTAMPTZ NOT NULL,
	is_on_diet    BOOLEAN NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meals_owner_occurred
	ON meals (owner_user_id, occurred_at DESC, seq ASC);
`

// Migrate crea el esquema si la base está vacía y verifica la versión si no.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin migrate: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaVersionsTable); err != nil {
		return fmt.Errorf("postgres: create schema_versions: %w", err)
	}

	var current int64
	err = tx.QueryRowContext(ctx,
		`SELECT version FROM schema_versions WHERE component = $1`, mealsComponent,
	).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("postgres: read schema version: %w", err)
	}

	switch {
	case current == SchemaVersion:
		return nil
	case current > SchemaVersion:
		return fmt.Errorf("postgres: schema version %d is newer than supported %d", current, SchemaVersion)
	case current != 0:
		return fmt.Errorf("postgres: no migration path from schema version %d", current)
	}

	if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("postgres: apply schema v1: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO schema_versions (component, version) VALUES ($1, $2)
		ON CONFLICT (component) DO UPDATE SET version = EXCLUDED.version, applied_at = now()
	`, mealsComponent, SchemaVersion); err != nil {
		return fmt.Errorf("postgres: write schema version: %w", err)
	}

	return tx.Commit()
}
