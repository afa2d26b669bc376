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

// CollectionService coordinates saving a generated card set as a named,
// durable collection. A save moves through validating (name check),
// checking (read the user record, run the registry decision), and
// committing (one atomic batch carrying the registry update and every card
// document). It either fully commits or leaves the store untouched.
type CollectionService struct {
	store  docstore.Store
	logger *slog.Logger
}

// NewCollectionService creates a CollectionService with the given
// dependencies. The store is required; a nil logger falls back to the
// default.
func NewCollectionService(store docstore.Store, log *slog.Logger) (*CollectionService, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CollectionService{
		store:  store,
		logger: log.With(slog.String("component", "collection_service")),
	}, nil
}

// Save durably stores cards as the user's collection named name.
//
// Returns ErrInvalidName or ErrDuplicateName before any mutation; both are
// user-correctable. Any other error means the store faulted and nothing is
// guaranteed to have changed, because the whole commit rides on one atomic
// batch: the user record's collection list is merge-written (so unrelated
// fields like the pro flag survive) together with one document per card.
//
// An empty card set is legal and still registers the collection: the
// registry entry, not the presence of cards, is the source of truth for "a
// named set exists".
//
// Concurrent sessions racing on the same name are not serialized: both may
// observe the name as absent and both commit, leaving two entries with the
// same name. The last Checking read wins. Single-flight per session is the
// caller's responsibility.
func (s *CollectionService) Save(ctx context.Context, userID, name string, cards []domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == "" {
		return domain.ErrEmptyUserID
	}
	if err := ValidateName(name); err != nil {
		log.Debug("save rejected: invalid name",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return err
	}

	existing, err := s.loadCollections(ctx, userID)
	if err != nil {
		log.Error("failed to read user record during save",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read user record: %w", err)
	}

	updated, err := RegisterIfAbsent(existing, name)
	if err != nil {
		log.Debug("save rejected by registry",
			slog.String("user_id", userID),
			slog.String("name", name),
			slog.String("error", err.Error()))
		return err
	}

	batch := s.store.Batch()
	batch.Set(docstore.UserPath(userID), docstore.Fields{
		fieldCollections: encodeCollections(updated),
	}, true)

	ops := materializeCards(s.store, userID, name, cards)
	for _, op := range ops {
		batch.Set(op.path, op.fields, false)
	}

	if err := batch.Commit(ctx); err != nil {
		log.Error("failed to commit collection save",
			slog.String("user_id", userID),
			slog.String("name", name),
			slog.Int("cards", len(cards)),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit collection %q: %w", name, err)
	}

	log.Info("collection saved",
		slog.String("user_id", userID),
		slog.String("name", name),
		slog.Int("cards", len(cards)))
	return nil
}

// List returns the user's collection refs in registry order. A user with
// no record reads as having no collections; absence is not an error.
func (s *CollectionService) List(ctx context.Context, userID string) ([]domain.CollectionRef, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}
	return s.loadCollections(ctx, userID)
}

// Cards returns the card documents of one named collection, in the
// store's native read order. Returns ErrCollectionNotFound if the name is
// not in the user's registry.
func (s *CollectionService) Cards(ctx context.Context, userID, name string) ([]domain.Card, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	refs, err := s.loadCollections(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read user record: %w", err)
	}

	registered := false
	for _, ref := range refs {
		if ref.Name == name {
			registered = true
			break
		}
	}
	if !registered {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, name)
	}

	docs, err := s.store.List(ctx, docstore.CollectionPath(userID, name))
	if err != nil {
		return nil, fmt.Errorf("failed to list cards of %q: %w", name, err)
	}

	cards := make([]domain.Card, 0, len(docs))
	for _, doc := range docs {
		front, _ := doc.Fields[fieldFront].(string)
		back, _ := doc.Fields[fieldBack].(string)
		cards = append(cards, domain.Card{
			ID:    docstore.DocumentID(doc.Path),
			Front: front,
			Back:  back,
		})
	}
	return cards, nil
}

// loadCollections reads the user record and decodes its collection list,
// auto-vivifying an absent record as an empty list.
func (s *CollectionService) loadCollections(ctx context.Context, userID string) ([]domain.CollectionRef, error) {
	doc, err := s.store.Get(ctx, docstore.UserPath(userID))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decodeCollections(doc.Fields), nil
}
