package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mbenning/cardbox-api/internal/docstore"
	"github.com/mbenning/cardbox-api/internal/domain"
	"github.com/mbenning/cardbox-api/internal/platform/logger"
)

// EntitlementService reconciles asynchronous payment completion with the
// user's pro entitlement flag.
type EntitlementService struct {
	store  docstore.Store
	logger *slog.Logger
}

// NewEntitlementService creates an EntitlementService with the given
// dependencies. The store is required; a nil logger falls back to the
// default.
func NewEntitlementService(store docstore.Store, log *slog.Logger) (*EntitlementService, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &EntitlementService{
		store:  store,
		logger: log.With(slog.String("component", "entitlement_service")),
	}, nil
}

// Reconcile marks the user as pro after a completed payment.
//
// The user record must already exist: a user had to be authenticated to
// initiate checkout, so an absent record means the signal is stale or
// bogus, and Reconcile returns ErrUserNotFound without creating anything.
// The flag is merge-written so the collection list is never touched, and
// the operation is idempotent by construction: repeating it writes true
// over true.
func (s *EntitlementService) Reconcile(ctx context.Context, userID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == "" {
		return domain.ErrEmptyUserID
	}

	path := docstore.UserPath(userID)

	if _, err := s.store.Get(ctx, path); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			log.Warn("payment completion for unknown user",
				slog.String("user_id", userID))
			return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		log.Error("failed to read user record during reconciliation",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read user record: %w", err)
	}

	if err := s.store.Set(ctx, path, docstore.Fields{fieldIsPro: true}, true); err != nil {
		log.Error("failed to write entitlement flag",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update entitlement: %w", err)
	}

	log.Info("entitlement reconciled", slog.String("user_id", userID))
	return nil
}
