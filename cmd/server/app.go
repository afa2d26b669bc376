package main

import (
	"log/slog"

	"github.com/mbenning/cardbox-api/internal/config"
	"github.com/mbenning/cardbox-api/internal/docstore"
	"github.com/mbenning/cardbox-api/internal/generation"
	"github.com/mbenning/cardbox-api/internal/service"
	"github.com/mbenning/cardbox-api/internal/service/auth"
)

// application holds the wired-up dependencies of the running server.
type application struct {
	config             *config.Config
	logger             *slog.Logger
	store              docstore.Store
	jwtService         auth.JWTService
	generator          generation.Generator
	collectionService  *service.CollectionService
	entitlementService *service.EntitlementService

	// cleanup releases store connections; run after the HTTP server has
	// drained.
	cleanup func()
}
