package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kylasweb/IOC-Spinwheel/internal/config"
	"github.com/kylasweb/IOC-Spinwheel/internal/database"
	"github.com/kylasweb/IOC-Spinwheel/internal/database/memory"
	"github.com/kylasweb/IOC-Spinwheel/internal/database/postgres"
	"github.com/kylasweb/IOC-Spinwheel/internal/database/sqlite"
	"github.com/kylasweb/IOC-Spinwheel/internal/repository"
)

// Repositories holds the persistence backends for one process
type Repositories struct {
	Players repository.Player
	Codes   repository.CodeRegistry

	// db is nil for in-memory storage
	db database.Pool
}

// HealthPool returns the backing database as a readiness probe, or nil for memory storage
func (r *Repositories) HealthPool() database.Pool {
	return r.db
}

// Close releases the database connection
func (r *Repositories) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// InitializeRepositories selects the storage backend. Postgres and SQLite
// connect and apply the embedded migrations before returning.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch {
	case cfg.UsePostgres():
		return initPostgres(ctx, cfg)
	case cfg.UseSQLite():
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		slog.Info(LogMsgStorageReady, "backend", config.StorageSQLite, "path", cfg.SQLitePath)
		return &Repositories{
			Players: sqlite.NewPlayerRepository(db),
			Codes:   sqlite.NewCodeRegistry(db),
			db:      db,
		}, nil
	default:
		slog.Info(LogMsgStorageReady, "backend", config.StorageMemory)
		return &Repositories{
			Players: memory.NewPlayerRepository(),
			Codes:   memory.NewCodeRegistry(),
		}, nil
	}
}

func initPostgres(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}

	slog.Info(LogMsgStorageReady, "backend", config.StoragePostgres, "host", cfg.DBHost, "db", cfg.DBName)
	return &Repositories{
		Players: postgres.NewPlayerRepository(pool),
		Codes:   postgres.NewCodeRegistry(pool),
		db:      pool,
	}, nil
}
