package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	data      map[string][]Document
	failLoad  bool
	failSave  bool
	saveCalls int
	closed    bool
}

func newStubBackend() *stubBackend {
	return &stubBackend{data: make(map[string][]Document)}
}

func (b *stubBackend) Load(ctx context.Context, collection string) ([]Document, error) {
	if b.failLoad {
		return nil, errors.New("load broken")
	}
	return b.data[collection], nil
}

func (b *stubBackend) Save(ctx context.Context, collection string, docs []Document) error {
	b.saveCalls++
	if b.failSave {
		return errors.New("save broken")
	}
	b.data[collection] = docs
	return nil
}

func (b *stubBackend) Wipe(ctx context.Context, collections ...string) error {
	for _, c := range collections {
		delete(b.data, c)
	}
	return nil
}

func (b *stubBackend) Close() error {
	b.closed = true
	return nil
}

func TestAdapter_PrimaryServesWhenHealthy(t *testing.T) {
	ctx := context.Background()
	primary := newStubBackend()
	fallback := newStubBackend()
	a := NewAdapter(primary, fallback, nil)

	docs := []Document{{ID: "1", Body: []byte(`{"id":"1"}`)}}
	require.NoError(t, a.Save(ctx, CollectionLists, docs))

	assert.Equal(t, 1, primary.saveCalls)
	assert.Equal(t, 0, fallback.saveCalls)

	got, err := a.Load(ctx, CollectionLists)
	require.NoError(t, err)
	assert.Equal(t, docs, got)
}

func TestAdapter_DegradesToFallbackOnSaveFailure(t *testing.T) {
	ctx := context.Background()
	primary := newStubBackend()
	primary.failSave = true
	fallback := newStubBackend()
	a := NewAdapter(primary, fallback, nil)

	docs := []Document{{ID: "1", Body: []byte(`{"id":"1"}`)}}
	require.NoError(t, a.Save(ctx, CollectionLists, docs))
	assert.Equal(t, docs, fallback.data[CollectionLists])
}

func TestAdapter_DegradesToFallbackOnLoadFailure(t *testing.T) {
	ctx := context.Background()
	primary := newStubBackend()
	primary.failLoad = true
	fallback := newStubBackend()
	fallback.data[CollectionLists] = []Document{{ID: "9", Body: []byte(`{"id":"9"}`)}}
	a := NewAdapter(primary, fallback, nil)

	got, err := a.Load(ctx, CollectionLists)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "9", got[0].ID)
}

func TestAdapter_SaveErrorsOnlyWhenBothFail(t *testing.T) {
	ctx := context.Background()
	primary := newStubBackend()
	primary.failSave = true
	fallback := newStubBackend()
	fallback.failSave = true
	a := NewAdapter(primary, fallback, nil)

	err := a.Save(ctx, CollectionLists, nil)
	require.Error(t, err)
}

func TestAdapter_NilFallbackTolerated(t *testing.T) {
	ctx := context.Background()
	primary := newStubBackend()
	primary.failLoad = true
	primary.failSave = true
	a := NewAdapter(primary, nil, nil)

	got, err := a.Load(ctx, CollectionLists)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, a.Save(ctx, CollectionLists, nil))
}

func TestAdapter_WipeAndCloseHitBothBackends(t *testing.T) {
	ctx := context.Background()
	primary := newStubBackend()
	fallback := newStubBackend()
	primary.data[CollectionLists] = []Document{{ID: "1"}}
	fallback.data[CollectionLists] = []Document{{ID: "1"}}
	a := NewAdapter(primary, fallback, nil)

	require.NoError(t, a.Wipe(ctx, Collections()...))
	assert.Empty(t, primary.data)
	assert.Empty(t, fallback.data)

	require.NoError(t, a.Close())
	assert.True(t, primary.closed)
	assert.True(t, fallback.closed)
}
