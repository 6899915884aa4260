package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.Get(ctx, "missing.json")
	require.True(t, IsNotExist(err))

	require.NoError(t, store.Put(ctx, "partitions/b.json", []byte(`{"strains":[]}`)))
	require.NoError(t, store.Put(ctx, "partitions/a.json", []byte(`{}`)))
	require.NoError(t, store.Put(ctx, "index/strains-index.json", []byte(`{}`)))

	data, err := store.Get(ctx, "partitions/b.json")
	require.NoError(t, err)
	require.Equal(t, `{"strains":[]}`, string(data))

	// overwrite
	require.NoError(t, store.Put(ctx, "partitions/b.json", []byte(`{"strains":[1]}`)))
	data, err = store.Get(ctx, "partitions/b.json")
	require.NoError(t, err)
	require.Equal(t, `{"strains":[1]}`, string(data))

	keys, err := store.List(ctx, "partitions/", 0)
	require.NoError(t, err)
	require.Equal(t, []string{"partitions/a.json", "partitions/b.json"}, keys)

	keys, err = store.List(ctx, "partitions/", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"partitions/a.json"}, keys)

	keys, err = store.List(ctx, "nope/", 0)
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestFilesystemStore(t *testing.T) {
	store, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestOpenFallsBackWithoutBucket(t *testing.T) {
	store, err := Open(context.Background(), Options{LocalDir: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &Filesystem{}, store)
}
