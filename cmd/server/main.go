// Package main implements the entry point for the Cardbox API server,
// which turns users' text into flashcards via an LLM and persists named
// collections of them per account.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/mbenning/cardbox-api/internal/config"
	"github.com/mbenning/cardbox-api/internal/platform/gemini"
	"github.com/mbenning/cardbox-api/internal/platform/logger"
	"github.com/mbenning/cardbox-api/internal/service"
	"github.com/mbenning/cardbox-api/internal/service/auth"
)

func main() {
	app, err := initializeApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and wires up all application components.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("store_driver", cfg.Store.Driver))

	store, cleanup, err := setupDocStore(ctx, cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up document store: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to set up JWT service: %w", err)
	}

	generator, err := gemini.NewGenerator(ctx, appLogger, cfg.LLM)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to set up card generator: %w", err)
	}

	collectionService, err := service.NewCollectionService(store, appLogger)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to set up collection service: %w", err)
	}

	entitlementService, err := service.NewEntitlementService(store, appLogger)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to set up entitlement service: %w", err)
	}

	return &application{
		config:             cfg,
		logger:             appLogger,
		store:              store,
		jwtService:         jwtService,
		generator:          generator,
		collectionService:  collectionService,
		entitlementService: entitlementService,
		cleanup:            cleanup,
	}, nil
}
