package api

import "github.com/mbenning/cardbox-api/internal/domain"

// GenerateRequest represents the request body for generating flashcards
type GenerateRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// CardPayload is one front/back pair as it travels over the API
type CardPayload struct {
	ID    string `json:"id,omitempty"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GenerateResponse represents the response for a generation request
type GenerateResponse struct {
	Cards []CardPayload `json:"cards"`
}

// SaveCollectionRequest represents the request body for saving a collection.
// An empty card list is legal: the collection is registered with no cards.
type SaveCollectionRequest struct {
	Name  string        `json:"name" validate:"required"`
	Cards []CardPayload `json:"cards"`
}

// CollectionResponse represents one collection ref
type CollectionResponse struct {
	Name string `json:"name"`
}

// CollectionListResponse represents the caller's collection list
type CollectionListResponse struct {
	Collections []CollectionResponse `json:"collections"`
}

// CollectionCardsResponse represents the cards of one collection
type CollectionCardsResponse struct {
	Name  string        `json:"name"`
	Cards []CardPayload `json:"cards"`
}

// CompletePaymentRequest carries the opaque checkout session token from
// the payment redirect
type CompletePaymentRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

func cardsToDomain(payloads []CardPayload) []domain.Card {
	cards := make([]domain.Card, 0, len(payloads))
	for _, p := range payloads {
		cards = append(cards, domain.Card{Front: p.Front, Back: p.Back})
	}
	return cards
}

func cardsToPayload(cards []domain.Card) []CardPayload {
	payloads := make([]CardPayload, 0, len(cards))
	for _, c := range cards {
		payloads = append(payloads, CardPayload{ID: c.ID, Front: c.Front, Back: c.Back})
	}
	return payloads
}
