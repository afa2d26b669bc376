package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a map-backed Store used by unit tests and local
// development. It honours the same contract as the remote backends:
// batches apply under a single lock, so readers never observe a partially
// committed batch.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Fields

	// failWith, when set, makes every subsequent operation fail with the
	// given error. Used by tests to exercise the Failed paths.
	failWith error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]Fields),
	}
}

var _ Store = (*MemoryStore)(nil)

// FailWith makes all subsequent operations return err. Passing nil
// restores normal operation.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Len returns the number of stored documents.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Get implements Store.Get.
func (s *MemoryStore) Get(ctx context.Context, path string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failWith != nil {
		return Document{}, s.failWith
	}

	fields, ok := s.docs[path]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{Path: path, Fields: fields.Clone()}, nil
}

// Set implements Store.Set.
func (s *MemoryStore) Set(ctx context.Context, path string, fields Fields, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	s.apply(path, fields, merge)
	return nil
}

// List implements Store.List. Documents come back ordered by identifier,
// mirroring the native read order of the remote backends.
func (s *MemoryStore) List(ctx context.Context, path string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	var docs []Document
	for p, fields := range s.docs {
		if ParentPath(p) == path {
			docs = append(docs, Document{Path: p, Fields: fields.Clone()})
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// Batch implements Store.Batch.
func (s *MemoryStore) Batch() Batch {
	return &memoryBatch{store: s}
}

// AllocateID implements Store.AllocateID.
func (s *MemoryStore) AllocateID() string {
	return uuid.NewString()
}

// apply writes fields at path. Caller must hold the write lock.
func (s *MemoryStore) apply(path string, fields Fields, merge bool) {
	if merge {
		if existing, ok := s.docs[path]; ok {
			merged := existing.Clone()
			for k, v := range fields.Clone() {
				merged[k] = v
			}
			s.docs[path] = merged
			return
		}
	}
	s.docs[path] = fields.Clone()
}

type memoryBatch struct {
	store *MemoryStore
	ops   []batchOp
}

type batchOp struct {
	path   string
	fields Fields
	merge  bool
}

func (b *memoryBatch) Set(path string, fields Fields, merge bool) {
	b.ops = append(b.ops, batchOp{path: path, fields: fields.Clone(), merge: merge})
}

func (b *memoryBatch) Commit(ctx context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	if b.store.failWith != nil {
		return b.store.failWith
	}

	for _, op := range b.ops {
		b.store.apply(op.path, op.fields, op.merge)
	}
	return nil
}
