package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const (
	// SchemaVersion es la versión de esquema que entiende este binario.
	SchemaVersion int64 = 2

	mealsComponent = "meals"
)

const mealsSchema = `
CREATE TABLE IF NOT EXISTS schema_versions (
	component  TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	applied_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS meals (
	id            TEXT PRIMARY KEY,
	owner_user_id TEXT NOT NULL,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	occurred_at   INTEGER NOT NULL,
	is_on_diet    INTEGER NOT NULL,
	created_at    INTEGER NOT NULL,
	updated_at    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meals_owner_occurred ON meals (owner_user_id, occurred_at DESC);
`

// v2: timestamps pasan de unix nanos a unix micros. Los nanos solo cubren
// 1678..2262. occurred_at ya estaba truncado a micros.
const migrateV1toV2 = `
UPDATE meals SET
	occurred_at = occurred_at / 1000,
	created_at  = created_at / 1000,
	updated_at  = updated_at / 1000;
`

// Open abre (o crea) la base en path. Una sola conexión: sqlite serializa
// las escrituras igual y así ":memory:" funciona con el pool.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	return db, nil
}

// Migrate crea el esquema si la base está vacía y verifica la versión si no.
func Migrate(ctx context.Context, db *sql.DB) error {
	var current int64
	err := db.QueryRowContext(ctx,
		`SELECT version FROM schema_versions WHERE component = ?`, mealsComponent,
	).Scan(&current)
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows), isNoSuchTable(err):
		current = 0
	default:
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	switch {
	case current == SchemaVersion:
		return nil
	case current > SchemaVersion:
		return fmt.Errorf("sqlite: schema version %d is newer than supported %d", current, SchemaVersion)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin migrate: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	switch current {
	case 0:
		// base nueva: esquema completo, ya en micros
		if _, err := tx.ExecContext(ctx, mealsSchema); err != nil {
			return fmt.Errorf("sqlite: apply schema: %w", err)
		}
	case 1:
		if _, err := tx.ExecContext(ctx, migrateV1toV2); err != nil {
			return fmt.Errorf("sqlite: migrate v1 to v2: %w", err)
		}
	default:
		return fmt.Errorf("sqlite: no migration path from schema version %d", current)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO schema_versions (component, version) VALUES (?, ?)
		ON CONFLICT(component) DO UPDATE SET version = excluded.version, applied_at = unixepoch()
	`, mealsComponent, SchemaVersion); err != nil {
		return fmt.Errorf("sqlite: write schema version: %w", err)
	}

	return tx.Commit()
}

// SchemaVersionOf devuelve 0 si la base no fue migrada.
func SchemaVersionOf(ctx context.Context, db *sql.DB) (int64, error) {
	var v int64
	err := db.QueryRowContext(ctx,
		`SELECT version FROM schema_versions WHERE component = ?`, mealsComponent,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) || isNoSuchTable(err) {
		return 0, nil
	}
	return v, err
}

func isNoSuchTable(err error) bool {
	return err != nil && containsFold(err.Error(), "no such table")
}
