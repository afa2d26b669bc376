package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbenning/cardbox-api/internal/docstore"
	"github.com/mbenning/cardbox-api/internal/domain"
)

func TestEntitlementService_Reconcile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("marks an existing user as pro", func(t *testing.T) {
		t.Parallel()

		store := docstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, docstore.UserPath("user-1"),
			docstore.Fields{fieldCollections: []any{map[string]any{"name": "Biology"}}}, false))

		svc, err := NewEntitlementService(store, nil)
		require.NoError(t, err)

		require.NoError(t, svc.Reconcile(ctx, "user-1"))

		doc, err := store.Get(ctx, docstore.UserPath("user-1"))
		require.NoError(t, err)
		assert.Equal(t, true, doc.Fields[fieldIsPro])
	})

	t.Run("merge write preserves the collection list", func(t *testing.T) {
		t.Parallel()

		store := docstore.NewMemoryStore()
		collections := []any{map[string]any{"name": "Biology"}}
		require.NoError(t, store.Set(ctx, docstore.UserPath("user-1"),
			docstore.Fields{fieldCollections: collections}, false))

		svc, err := NewEntitlementService(store, nil)
		require.NoError(t, err)
		require.NoError(t, svc.Reconcile(ctx, "user-1"))

		doc, err := store.Get(ctx, docstore.UserPath("user-1"))
		require.NoError(t, err)
		assert.Equal(t, collections, doc.Fields[fieldCollections])
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		store := docstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, docstore.UserPath("user-1"), docstore.Fields{}, false))

		svc, err := NewEntitlementService(store, nil)
		require.NoError(t, err)

		require.NoError(t, svc.Reconcile(ctx, "user-1"))
		require.NoError(t, svc.Reconcile(ctx, "user-1"))

		doc, err := store.Get(ctx, docstore.UserPath("user-1"))
		require.NoError(t, err)
		assert.Equal(t, true, doc.Fields[fieldIsPro])
	})

	t.Run("absent user is not created", func(t *testing.T) {
		t.Parallel()

		store := docstore.NewMemoryStore()
		svc, err := NewEntitlementService(store, nil)
		require.NoError(t, err)

		err = svc.Reconcile(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Zero(t, store.Len())
	})

	t.Run("empty user id is rejected", func(t *testing.T) {
		t.Parallel()

		svc, err := NewEntitlementService(docstore.NewMemoryStore(), nil)
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Reconcile(ctx, ""), domain.ErrEmptyUserID)
	})

	t.Run("store fault surfaces wrapped", func(t *testing.T) {
		t.Parallel()

		store := docstore.NewMemoryStore()
		store.FailWith(docstore.ErrUnavailable)

		svc, err := NewEntitlementService(store, nil)
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Reconcile(ctx, "user-1"), docstore.ErrUnavailable)
	})
}

func TestNewEntitlementService(t *testing.T) {
	t.Parallel()

	_, err := NewEntitlementService(nil, nil)
	assert.Error(t, err)
}
