// Package generation defines the boundary between the application core
// and the external text-to-flashcard service.
package generation

import (
	"context"

	"github.com/mbenning/cardbox-api/internal/domain"
)

// Generator defines the interface for generating flashcards from text.
// The application core treats the service as opaque: raw text in, an
// ordered list of front/back pairs out. Generated cards live only in
// memory until the user saves them as a collection.
type Generator interface {
	// GenerateCards creates flashcards from the provided text.
	// The userID identifies the requesting user for logging and quota
	// attribution; it does not affect the generated content.
	GenerateCards(ctx context.Context, text string, userID string) ([]domain.Card, error)
}
