// Package storage elige el backend de meals según la config.
package storage

import (
	"context"
	"fmt"

	"daily-diet/internal/adapters/storage/memory"
	"daily-diet/internal/adapters/storage/postgres"
	"daily-diet/internal/adapters/storage/sqlite"
	"daily-diet/internal/config"
	"daily-diet/internal/domain/meals"
)

// Backend es un repositorio abierto más su cierre.
type Backend struct {
	Repo  meals.Repository
	Name  config.Storage
	close func() error
}

func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Open abre el backend configurado. Con migrate=true aplica el esquema antes
// de devolverlo (memoria no tiene esquema).
func Open(ctx context.Context, cfg config.Config, migrate bool) (*Backend, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return &Backend{Repo: memory.NewMealRepo(), Name: cfg.Storage}, nil

	case config.StoragePostgres:
		db, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &Backend{Repo: postgres.NewMealsRepo(db), Name: cfg.Storage, close: db.Close}, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := sqlite.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &Backend{Repo: sqlite.NewMealsRepo(db), Name: cfg.Storage, close: db.Close}, nil

	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Storage)
	}
}
