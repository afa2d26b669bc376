// Package docstore provides the client abstraction for the per-user
// hierarchical document store and an in-memory implementation of it.
package docstore

import (
	"context"
	"strings"
)

// Fields is the schemaless field set of a single document.
type Fields map[string]any

// Document is the result of a successful point read.
type Document struct {
	Path   string
	Fields Fields
}

// Store is the thin client contract against the document store.
//
// Paths are slash-separated and address documents directly, e.g.
// "users/u1" for a user record and "users/u1/Biology/<id>" for one card.
// Transport and auth faults surface wrapped in ErrUnavailable and propagate
// uninterpreted; this layer performs no retries. Retry policy, if any,
// belongs to the caller.
type Store interface {
	// Get performs a point read of the document at path.
	// Returns ErrNotFound if no document exists there.
	Get(ctx context.Context, path string) (Document, error)

	// Set writes fields to the document at path, creating it if absent.
	// With merge true, fields not named are preserved; with merge false,
	// the document is replaced wholesale.
	Set(ctx context.Context, path string, fields Fields, merge bool) error

	// List reads the documents that sit directly under the given
	// collection path, in the store's native identifier order. Callers
	// must not assume insertion order survives. An empty collection
	// yields an empty slice, not an error.
	List(ctx context.Context, path string) ([]Document, error)

	// Batch returns a new, empty write batch bound to this store.
	Batch() Batch

	// AllocateID returns a fresh opaque document identifier. IDs are
	// unique but carry no ordering guarantee.
	AllocateID() string
}

// Batch accumulates set operations and applies them atomically.
// Either every enqueued write applies or none does, and concurrent readers
// never observe a partially applied batch.
type Batch interface {
	// Set enqueues a write; it performs no I/O until Commit.
	Set(path string, fields Fields, merge bool)

	// Commit applies all enqueued writes as one unit.
	Commit(ctx context.Context) error
}

// Clone returns a deep-enough copy of the fields for safe hand-off across
// the store boundary. Nested maps and slices are copied one level down,
// which covers the shapes this application persists.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		switch val := v.(type) {
		case map[string]any:
			m := make(map[string]any, len(val))
			for mk, mv := range val {
				m[mk] = mv
			}
			out[k] = m
		case []any:
			s := make([]any, len(val))
			copy(s, val)
			out[k] = s
		default:
			out[k] = v
		}
	}
	return out
}

// UserPath returns the document path of the given user's record.
func UserPath(userID string) string {
	return "users/" + userID
}

// CollectionPath returns the path of the sub-collection holding the cards
// of the named collection.
func CollectionPath(userID, name string) string {
	return UserPath(userID) + "/" + name
}

// CardPath returns the path of a single card document.
func CardPath(userID, name, cardID string) string {
	return CollectionPath(userID, name) + "/" + cardID
}

// DocumentID returns the final path segment, which is the document's own
// identifier within its collection.
func DocumentID(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ParentPath returns the collection path a document sits under, or an
// empty string for top-level paths.
func ParentPath(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return ""
}
