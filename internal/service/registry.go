package service

import (
	"fmt"
	"strings"

	"github.com/mbenning/cardbox-api/internal/docstore"
	"github.com/mbenning/cardbox-api/internal/domain"
)

// Document field names of the persisted user record.
const (
	fieldCollections = "collections"
	fieldIsPro       = "isPro"
	fieldFront       = "front"
	fieldBack        = "back"
)

// ValidateName checks that a collection name is usable. Empty and
// whitespace-only names are rejected, as are names containing a path
// separator, which could not address a document path unambiguously.
// The check lives here rather than in the HTTP layer so every caller gets
// the same guarantee before any store access.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("%w: name contains %q", ErrInvalidName, "/")
	}
	return nil
}

// RegisterIfAbsent is the registry's uniqueness decision. It scans the
// existing list for an exact, case-sensitive match of name; on a match it
// returns ErrDuplicateName and leaves the input untouched, otherwise it
// returns a new list with the name appended. It performs no writes itself:
// the coordinator owns the single read-decide-write path, and this stays a
// pure function so no interleaved mutation can happen inside the decision.
func RegisterIfAbsent(existing []domain.CollectionRef, name string) ([]domain.CollectionRef, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	for _, ref := range existing {
		if ref.Name == name {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}

	updated := make([]domain.CollectionRef, 0, len(existing)+1)
	updated = append(updated, existing...)
	updated = append(updated, domain.CollectionRef{Name: name})
	return updated, nil
}

// decodeCollections extracts the collection list from a user record's
// fields. A missing or malformed field reads as an empty list, matching
// the auto-vivify semantics of the user record itself.
func decodeCollections(fields docstore.Fields) []domain.CollectionRef {
	raw, ok := fields[fieldCollections].([]any)
	if !ok {
		return nil
	}

	refs := make([]domain.CollectionRef, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, ok := m["name"].(string)
		if !ok {
			continue
		}
		refs = append(refs, domain.CollectionRef{Name: name})
	}
	return refs
}

// encodeCollections converts a collection list into the schemaless shape
// stored on the user record.
func encodeCollections(refs []domain.CollectionRef) []any {
	out := make([]any, len(refs))
	for i, ref := range refs {
		out[i] = map[string]any{"name": ref.Name}
	}
	return out
}
