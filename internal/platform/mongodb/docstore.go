// Package mongodb implements the document store contract on top of a
// MongoDB collection. It is an alternative backend to postgres, selected
// by the store.driver configuration setting.
//
// Batched writes commit inside a session transaction, so the deployment
// must be a replica set (or mongos) for the atomicity contract to hold.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbenning/cardbox-api/internal/docstore"
	"github.com/mbenning/cardbox-api/internal/platform/logger"
)

const collectionName = "documents"

// Store implements docstore.Store on a MongoDB collection. Each document
// is one record keyed by its full path (_id), with the field set held
// under a "fields" sub-document and the parent path indexed for listing.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *slog.Logger
}

// document is the wire shape of one stored record.
type document struct {
	Path   string `bson:"_id"`
	Parent string `bson:"parent"`
	Fields bson.M `bson:"fields"`
}

// Connect dials MongoDB and returns a Store bound to the given database.
// The caller owns the returned Store and must Close it on shutdown.
func Connect(ctx context.Context, uri, database string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to mongodb: %v", docstore.ErrUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: failed to ping mongodb: %v", docstore.ErrUnavailable, err)
	}

	store := &Store{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
		logger: log.With(slog.String("component", "mongodb_docstore")),
	}

	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return store, nil
}

var _ docstore.Store = (*Store)(nil)

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "parent", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create parent index: %w", mapError(err))
	}
	return nil
}

// Get implements docstore.Store.Get.
func (s *Store) Get(ctx context.Context, path string) (docstore.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": path}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug("document not found", slog.String("path", path))
			return docstore.Document{}, docstore.ErrNotFound
		}
		log.Error("failed to read document",
			slog.String("error", err.Error()),
			slog.String("path", path))
		return docstore.Document{}, mapError(err)
	}

	return docstore.Document{Path: doc.Path, Fields: normalize(doc.Fields)}, nil
}

// Set implements docstore.Store.Set.
func (s *Store) Set(ctx context.Context, path string, fields docstore.Fields, merge bool) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": path},
		setUpdate(path, fields, merge),
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// List implements docstore.Store.List, ordered by document identifier.
func (s *Store) List(ctx context.Context, path string) ([]docstore.Document, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"parent": path},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []docstore.Document
	for cursor.Next(ctx) {
		var doc document
		if err := cursor.Decode(&doc); err != nil {
			return nil, mapError(err)
		}
		docs = append(docs, docstore.Document{Path: doc.Path, Fields: normalize(doc.Fields)})
	}
	if err := cursor.Err(); err != nil {
		return nil, mapError(err)
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

// setUpdate builds the update document for one write. Merge writes $set
// individual field keys so unnamed fields survive; replace writes swap the
// whole fields sub-document.
func setUpdate(path string, fields docstore.Fields, merge bool) bson.M {
	if merge {
		set := bson.M{}
		for k, v := range fields {
			set["fields."+k] = v
		}
		if len(set) == 0 {
			set["fields"] = bson.M{}
		}
		return bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"parent": docstore.ParentPath(path)},
		}
	}
	return bson.M{
		"$set":         bson.M{"fields": bson.M(fields)},
		"$setOnInsert": bson.M{"parent": docstore.ParentPath(path)},
	}
}

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

// Commit applies all enqueued writes inside one session transaction.
func (b *batch) Commit(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, b.store.logger)

	session, err := b.store.client.StartSession()
	if err != nil {
		log.Error("failed to start batch session",
			slog.String("error", err.Error()))
		return mapError(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		for _, op := range b.ops {
			_, err := b.store.coll.UpdateOne(sc,
				bson.M{"_id": op.path},
				setUpdate(op.path, op.fields, op.merge),
				options.Update().SetUpsert(true),
			)
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		log.Error("failed to commit batch",
			slog.String("error", err.Error()),
			slog.Int("ops", len(b.ops)))
		return mapError(err)
	}

	log.Debug("batch committed", slog.Int("ops", len(b.ops)))
	return nil
}

// normalize converts decoded bson values into the plain map and slice
// types the rest of the application works with, so callers never see
// driver-specific types leak across the store boundary.
func normalize(m bson.M) docstore.Fields {
	if m == nil {
		return nil
	}
	out := make(docstore.Fields, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case bson.M:
		return map[string]any(normalize(val))
	case bson.D:
		m := bson.M{}
		for _, e := range val {
			m[e.Key] = e.Value
		}
		return map[string]any(normalize(m))
	case bson.A:
		s := make([]any, len(val))
		for i, e := range val {
			s[i] = normalizeValue(e)
		}
		return s
	case int32:
		return int(val)
	case int64:
		return int(val)
	default:
		return v
	}
}

// mapError maps driver errors to the docstore error taxonomy.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %v", docstore.ErrNotFound, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}
	return err
}
