package service

import (
	"github.com/mbenning/cardbox-api/internal/docstore"
	"github.com/mbenning/cardbox-api/internal/domain"
)

// writeOp is one pending document write produced by materialization.
type writeOp struct {
	path   string
	fields docstore.Fields
}

// materializeCards converts an in-memory card array into one write
// operation per card under the collection's path, allocating a fresh
// document identifier for each. Nothing is dropped or deduplicated:
// duplicate front/back content stays duplicated, and a card count of N in
// always yields N write ops out. The allocated identifiers carry no
// ordering, so generation order is not guaranteed to survive storage; the
// store's native identifier order governs later reads.
func materializeCards(ids docstore.Store, userID, name string, cards []domain.Card) []writeOp {
	ops := make([]writeOp, 0, len(cards))
	for _, card := range cards {
		ops = append(ops, writeOp{
			path: docstore.CardPath(userID, name, ids.AllocateID()),
			fields: docstore.Fields{
				fieldFront: card.Front,
				fieldBack:  card.Back,
			},
		})
	}
	return ops
}
