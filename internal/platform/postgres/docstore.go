package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mbenning/cardbox-api/internal/docstore"
	"github.com/mbenning/cardbox-api/internal/platform/logger"
)

// Store implements the docstore.Store interface on top of a PostgreSQL
// documents table. Each document is one row keyed by its full path, with
// the field set held in a JSONB column. A derived parent column supports
// collection listing.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates a PostgreSQL implementation of the docstore.Store
// interface. The database connection should be initialized and managed by
// the caller. If log is nil, a default logger is used.
func NewStore(db *sql.DB, log *slog.Logger) *Store {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Store{
		db:     db,
		logger: log.With(slog.String("component", "postgres_docstore")),
	}
}

var _ docstore.Store = (*Store)(nil)

// Get implements docstore.Store.Get.
func (s *Store) Get(ctx context.Context, path string) (docstore.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT fields FROM documents WHERE path = $1`

	var raw []byte
	err := s.db.QueryRowContext(ctx, query, path).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("document not found", slog.String("path", path))
			return docstore.Document{}, docstore.ErrNotFound
		}
		log.Error("failed to read document",
			slog.String("error", err.Error()),
			slog.String("path", path))
		return docstore.Document{}, MapError(err)
	}

	var fields docstore.Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return docstore.Document{}, fmt.Errorf("failed to decode document fields at %s: %w", path, err)
	}

	return docstore.Document{Path: path, Fields: fields}, nil
}

// Set implements docstore.Store.Set.
func (s *Store) Set(ctx context.Context, path string, fields docstore.Fields, merge bool) error {
	return setDocument(ctx, s.db, path, fields, merge)
}

// List implements docstore.Store.List. Documents come back ordered by
// path, which within one collection means ordered by document identifier.
func (s *Store) List(ctx context.Context, path string) ([]docstore.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT path, fields FROM documents WHERE parent = $1 ORDER BY path`

	rows, err := s.db.QueryContext(ctx, query, path)
	if err != nil {
		log.Error("failed to list documents",
			slog.String("error", err.Error()),
			slog.String("parent", path))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var docs []docstore.Document
	for rows.Next() {
		var (
			docPath string
			raw     []byte
		)
		if err := rows.Scan(&docPath, &raw); err != nil {
			return nil, MapError(err)
		}
		var fields docstore.Fields
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode document fields at %s: %w", docPath, err)
		}
		docs = append(docs, docstore.Document{Path: docPath, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return docs, nil
}

// Batch implements docstore.Store.Batch.
func (s *Store) Batch() docstore.Batch {
	return &batch{store: s}
}

// AllocateID implements docstore.Store.AllocateID.
func (s *Store) AllocateID() string {
	return uuid.NewString()
}

// dbtx is satisfied by both *sql.DB and *sql.Tx, letting setDocument serve
// point writes and batched writes with the same statement.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// setDocument upserts one document. Merge writes overlay the new fields on
// whatever the row already holds; replace writes swap the field set
// wholesale.
func setDocument(ctx context.Context, db dbtx, path string, fields docstore.Fields, merge bool) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document fields for %s: %w", path, err)
	}

	var query string
	if merge {
		query = `
			INSERT INTO documents (path, parent, fields)
			VALUES ($1, $2, $3)
			ON CONFLICT (path)
			DO UPDATE SET fields = documents.fields || EXCLUDED.fields, updated_at = now()
		`
	} else {
		query = `
			INSERT INTO documents (path, parent, fields)
			VALUES ($1, $2, $3)
			ON CONFLICT (path)
			DO UPDATE SET fields = EXCLUDED.fields, updated_at = now()
		`
	}

	if _, err := db.ExecContext(ctx, query, path, docstore.ParentPath(path), raw); err != nil {
		return MapError(err)
	}
	return nil
}

// batch accumulates writes and commits them inside a single SQL
// transaction, which provides the all-or-nothing guarantee of the
// docstore.Batch contract.
type batch struct {
	store *Store
	ops   []batchOp
}

type batchOp struct {
	path   string
	fields docstore.Fields
	merge  bool
}

func (b *batch) Set(path string, fields docstore.Fields, merge bool) {
	b.ops = append(b.ops, batchOp{path: path, fields: fields, merge: merge})
}

func (b *batch) Commit(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, b.store.logger)

	tx, err := b.store.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin batch transaction",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back batch after panic",
					slog.String("error", rbErr.Error()),
					slog.Any("panic", p))
			}
			// ALLOW-PANIC: Propagating caught panic from batch commit
			panic(p)
		}
	}()

	for _, op := range b.ops {
		if err := setDocument(ctx, tx, op.path, op.fields, op.merge); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back batch",
					slog.String("rollback_error", rbErr.Error()),
					slog.String("original_error", err.Error()))
			}
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit batch",
			slog.String("error", err.Error()),
			slog.Int("ops", len(b.ops)))
		return MapError(err)
	}

	log.Debug("batch committed", slog.Int("ops", len(b.ops)))
	return nil
}
