package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stokpano/internal/infrastructure/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_CreatesDataDirAndDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, "stokpano.db"))
	assert.NoError(t, err)
}

func TestSaveLoad_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	docs := []storage.Document{
		{ID: "z", Body: []byte(`{"id":"z"}`)},
		{ID: "a", Body: []byte(`{"id":"a"}`)},
		{ID: "m", Body: []byte(`{"id":"m"}`)},
	}
	require.NoError(t, s.Save(ctx, storage.CollectionLists, docs))

	got, err := s.Load(ctx, storage.CollectionLists)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Saved order wins over id order.
	assert.Equal(t, "z", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "m", got[2].ID)
	assert.JSONEq(t, `{"id":"z"}`, string(got[0].Body))
}

func TestSave_ReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Save(ctx, storage.CollectionLists, []storage.Document{
		{ID: "a", Body: []byte(`{"id":"a"}`)},
		{ID: "b", Body: []byte(`{"id":"b"}`)},
	}))
	require.NoError(t, s.Save(ctx, storage.CollectionLists, []storage.Document{
		{ID: "c", Body: []byte(`{"id":"c"}`)},
	}))

	got, err := s.Load(ctx, storage.CollectionLists)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestCollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Save(ctx, storage.CollectionLists, []storage.Document{
		{ID: "l", Body: []byte(`{"id":"l"}`)},
	}))
	require.NoError(t, s.Save(ctx, storage.CollectionFolders, []storage.Document{
		{ID: "f", Body: []byte(`{"id":"f"}`)},
	}))

	lists, err := s.Load(ctx, storage.CollectionLists)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "l", lists[0].ID)

	// Clearing one collection leaves the other alone.
	require.NoError(t, s.Save(ctx, storage.CollectionLists, nil))
	folders, err := s.Load(ctx, storage.CollectionFolders)
	require.NoError(t, err)
	assert.Len(t, folders, 1)
}

func TestWipe(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Save(ctx, storage.CollectionLists, []storage.Document{
		{ID: "a", Body: []byte(`{"id":"a"}`)},
	}))
	require.NoError(t, s.Wipe(ctx, storage.Collections()...))

	got, err := s.Load(ctx, storage.CollectionLists)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Wipe(ctx))
}

func TestReopen_KeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, storage.CollectionLists, []storage.Document{
		{ID: "a", Body: []byte(`{"id":"a"}`)},
	}))
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Load(ctx, storage.CollectionLists)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}
