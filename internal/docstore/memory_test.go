package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("get of absent document returns not found", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		_, err := store.Get(ctx, "users/u1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set then get round trips", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, "users/u1", Fields{"isPro": true}, false))

		doc, err := store.Get(ctx, "users/u1")
		require.NoError(t, err)
		assert.Equal(t, "users/u1", doc.Path)
		assert.Equal(t, true, doc.Fields["isPro"])
	})

	t.Run("replace drops unnamed fields", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, "users/u1", Fields{"a": 1, "b": 2}, false))
		require.NoError(t, store.Set(ctx, "users/u1", Fields{"a": 9}, false))

		doc, err := store.Get(ctx, "users/u1")
		require.NoError(t, err)
		assert.Equal(t, Fields{"a": 9}, doc.Fields)
	})

	t.Run("merge preserves unnamed fields", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, "users/u1", Fields{"a": 1, "b": 2}, false))
		require.NoError(t, store.Set(ctx, "users/u1", Fields{"a": 9}, true))

		doc, err := store.Get(ctx, "users/u1")
		require.NoError(t, err)
		assert.Equal(t, Fields{"a": 9, "b": 2}, doc.Fields)
	})

	t.Run("merge on absent document creates it", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, "users/u1", Fields{"a": 1}, true))

		doc, err := store.Get(ctx, "users/u1")
		require.NoError(t, err)
		assert.Equal(t, Fields{"a": 1}, doc.Fields)
	})

	t.Run("returned fields are isolated from the store", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, "users/u1", Fields{"list": []any{"x"}}, false))

		doc, err := store.Get(ctx, "users/u1")
		require.NoError(t, err)
		doc.Fields["list"] = []any{"mutated"}
		doc.Fields["new"] = true

		again, err := store.Get(ctx, "users/u1")
		require.NoError(t, err)
		assert.Equal(t, Fields{"list": []any{"x"}}, again.Fields)
	})
}

func TestMemoryStore_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "users/u1", Fields{"isPro": false}, false))
	require.NoError(t, store.Set(ctx, "users/u1/Biology/b", Fields{"front": "f2"}, false))
	require.NoError(t, store.Set(ctx, "users/u1/Biology/a", Fields{"front": "f1"}, false))
	require.NoError(t, store.Set(ctx, "users/u1/Chemistry/c", Fields{"front": "f3"}, false))
	require.NoError(t, store.Set(ctx, "users/u2/Biology/d", Fields{"front": "f4"}, false))

	t.Run("lists only direct children in identifier order", func(t *testing.T) {
		t.Parallel()

		docs, err := store.List(ctx, "users/u1/Biology")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "users/u1/Biology/a", docs[0].Path)
		assert.Equal(t, "users/u1/Biology/b", docs[1].Path)
	})

	t.Run("empty collection yields empty slice", func(t *testing.T) {
		t.Parallel()

		docs, err := store.List(ctx, "users/u1/History")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestMemoryStore_Batch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("commit applies every enqueued write", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, "users/u1", Fields{"isPro": true}, false))

		b := store.Batch()
		b.Set("users/u1", Fields{"collections": []any{map[string]any{"name": "Biology"}}}, true)
		b.Set("users/u1/Biology/c1", Fields{"front": "Q", "back": "A"}, false)
		require.NoError(t, b.Commit(ctx))

		doc, err := store.Get(ctx, "users/u1")
		require.NoError(t, err)
		assert.Equal(t, true, doc.Fields["isPro"], "merge write must preserve existing fields")
		assert.NotNil(t, doc.Fields["collections"])

		assert.Equal(t, 2, store.Len())
	})

	t.Run("failed commit applies nothing", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()

		b := store.Batch()
		b.Set("users/u1", Fields{"a": 1}, false)
		b.Set("users/u1/Biology/c1", Fields{"front": "Q"}, false)

		store.FailWith(ErrUnavailable)
		assert.ErrorIs(t, b.Commit(ctx), ErrUnavailable)
		store.FailWith(nil)

		assert.Zero(t, store.Len())
	})

	t.Run("staged writes are isolated until commit", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()

		b := store.Batch()
		b.Set("users/u1", Fields{"a": 1}, false)

		_, err := store.Get(ctx, "users/u1")
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, b.Commit(ctx))
		_, err = store.Get(ctx, "users/u1")
		assert.NoError(t, err)
	})
}

func TestMemoryStore_AllocateID(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := store.AllocateID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "identifier %q allocated twice", id)
		seen[id] = true
	}
}

func TestPathHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "users/u1", UserPath("u1"))
	assert.Equal(t, "users/u1/Biology", CollectionPath("u1", "Biology"))
	assert.Equal(t, "users/u1/Biology/c1", CardPath("u1", "Biology", "c1"))

	assert.Equal(t, "c1", DocumentID("users/u1/Biology/c1"))
	assert.Equal(t, "u1", DocumentID("users/u1"))
	assert.Equal(t, "standalone", DocumentID("standalone"))

	assert.Equal(t, "users/u1/Biology", ParentPath("users/u1/Biology/c1"))
	assert.Equal(t, "", ParentPath("standalone"))
}

func TestFieldsClone(t *testing.T) {
	t.Parallel()

	t.Run("nil clones to nil", func(t *testing.T) {
		t.Parallel()

		var f Fields
		assert.Nil(t, f.Clone())
	})

	t.Run("nested maps and slices are copied", func(t *testing.T) {
		t.Parallel()

		orig := Fields{
			"m": map[string]any{"k": "v"},
			"s": []any{"a", "b"},
		}
		clone := orig.Clone()

		clone["m"].(map[string]any)["k"] = "changed"
		clone["s"].([]any)[0] = "changed"

		assert.Equal(t, "v", orig["m"].(map[string]any)["k"])
		assert.Equal(t, "a", orig["s"].([]any)[0])
	})
}
