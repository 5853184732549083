package docstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layerforge/layering/docstore"
)

func TestMemoryStore_GetUnknownBucketFails(t *testing.T) {
	t.Parallel()

	store := docstore.NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, docstore.ErrBucketNotFound)
}

func TestMemoryStore_PutThenGetRoundTrips(t *testing.T) {
	t.Parallel()

	store := docstore.NewMemoryStore()
	ctx := context.Background()

	docs := []map[string]any{
		{"schema": "example/Kind/v1", "metadata": map[string]any{"name": "a"}, "data": map[string]any{"x": 1}},
	}

	require.NoError(t, store.Put(ctx, "site-a", docs))

	got, err := store.Get(ctx, "site-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0]["metadata"].(map[string]any)["name"])
}

func TestMemoryStore_GetReturnsADeepCopy(t *testing.T) {
	t.Parallel()

	store := docstore.NewMemoryStore()
	ctx := context.Background()

	data := map[string]any{"x": 1}
	require.NoError(t, store.Put(ctx, "bucket", []map[string]any{
		{"schema": "s", "metadata": map[string]any{"name": "a"}, "data": data},
	}))

	got, err := store.Get(ctx, "bucket")
	require.NoError(t, err)

	got[0]["data"].(map[string]any)["x"] = 999

	again, err := store.Get(ctx, "bucket")
	require.NoError(t, err)
	assert.Equal(t, 1, again[0]["data"].(map[string]any)["x"])
}

func TestMemoryStore_ListSortsBucketNames(t *testing.T) {
	t.Parallel()

	store := docstore.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "zeta", nil))
	require.NoError(t, store.Put(ctx, "alpha", nil))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestMemoryStore_PutReplacesPriorContents(t *testing.T) {
	t.Parallel()

	store := docstore.NewMemoryStore()
	ctx := context.Background()

	first := []map[string]any{{"schema": "s", "metadata": map[string]any{"name": "first"}}}
	second := []map[string]any{{"schema": "s", "metadata": map[string]any{"name": "second"}}}

	require.NoError(t, store.Put(ctx, "bucket", first))
	require.NoError(t, store.Put(ctx, "bucket", second))

	got, err := store.Get(ctx, "bucket")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0]["metadata"].(map[string]any)["name"])
}

// Compile-time assertions that both implementations satisfy Store.
var (
	_ docstore.Store = (*docstore.MemoryStore)(nil)
	_ docstore.Store = (*docstore.EtcdStore)(nil)
)
