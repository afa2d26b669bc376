package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mbenning/cardbox-api/internal/config"
	"github.com/mbenning/cardbox-api/internal/docstore"
	"github.com/mbenning/cardbox-api/internal/platform/mongodb"
	"github.com/mbenning/cardbox-api/internal/platform/postgres"
)

// setupDocStore opens the configured storage backend, applies any pending
// migrations, and returns the store plus a cleanup func for shutdown.
func setupDocStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (docstore.Store, func(), error) {
	switch cfg.Store.Driver {
	case "postgres":
		return setupPostgres(ctx, cfg, logger)
	case "mongodb":
		return setupMongo(ctx, cfg, logger)
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func setupPostgres(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (docstore.Store, func(), error) {
	db, err := sql.Open("pgx", cfg.Store.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := postgres.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	logger.Info("PostgreSQL document store ready")

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database connection", "error", err)
		}
	}
	return postgres.NewStore(db, logger), cleanup, nil
}

func setupMongo(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (docstore.Store, func(), error) {
	store, err := mongodb.Connect(ctx, cfg.Store.URL, cfg.Store.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("MongoDB document store ready",
		"database", cfg.Store.Database)

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("failed to disconnect from mongodb", "error", err)
		}
	}
	return store, cleanup, nil
}
