package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stokpano/internal/core/apperror"
	"stokpano/internal/core/id"
	"stokpano/internal/domain/list"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestStore(t)
	a := src.CreateList(ctx, CreateListInput{
		Name:     "round",
		Priority: list.PriorityHigh,
		Tags:     []string{"x"},
		Items:    []list.ItemInput{{StockCode: "A1", StockName: "Civata", Quantity: 4}},
	})

	data, err := src.ExportLists(ctx, nil, ExportOptions{})
	require.NoError(t, err)

	dst, _ := newTestStore(t)
	imported, err := dst.ImportLists(ctx, data)
	require.NoError(t, err)
	require.Len(t, imported, 1)

	got := imported[0]
	assert.NotEqual(t, a.ID, got.ID)
	assert.Equal(t, "round", got.Name)
	assert.Equal(t, list.PriorityHigh, got.Priority)
	assert.Equal(t, []string{"x"}, got.Tags)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "A1", got.Items[0].StockCode)
	assert.Len(t, dst.Lists(), 1)
}

func TestExportImport_Compressed(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestStore(t)
	src.CreateList(ctx, CreateListInput{Name: "zipped"})

	data, err := src.ExportLists(ctx, nil, ExportOptions{Compress: true})
	require.NoError(t, err)
	require.True(t, len(data) >= 4)
	assert.Equal(t, zstdMagic, data[:4])

	dst, _ := newTestStore(t)
	imported, err := dst.ImportLists(ctx, data)
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "zipped", imported[0].Name)
}

func TestExportLists_SubsetSkipsUnknownIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	a := s.CreateList(ctx, CreateListInput{Name: "a"})
	s.CreateList(ctx, CreateListInput{Name: "b"})

	data, err := s.ExportLists(ctx, []id.ID{a.ID, id.New()}, ExportOptions{})
	require.NoError(t, err)

	var env struct {
		Version int                  `json:"version"`
		Lists   []*list.PurchaseList `json:"lists"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, 1, env.Version)
	require.Len(t, env.Lists, 1)
	assert.Equal(t, "a", env.Lists[0].Name)
}

func TestExportImport_EmptySubsetRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestStore(t)
	src.CreateList(ctx, CreateListInput{Name: "kept"})

	// A subset of only unknown ids exports an empty payload, which must
	// still be importable.
	data, err := src.ExportLists(ctx, []id.ID{id.New()}, ExportOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lists":[]`)

	dst, _ := newTestStore(t)
	imported, err := dst.ImportLists(ctx, data)
	require.NoError(t, err)
	assert.Empty(t, imported)
	assert.Empty(t, dst.Lists())
}

func TestImportLists_NullListsEnvelopeAccepted(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	payload := []byte(`{"version":1,"exportedAt":"2026-01-01T00:00:00Z","lists":null}`)
	imported, err := s.ImportLists(ctx, payload)
	require.NoError(t, err)
	assert.Empty(t, imported)
	assert.Empty(t, s.Lists())
}

func TestImportLists_BareArrayAccepted(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	payload := []byte(`[{"name":"bare","status":"draft","priority":"normal"}]`)
	imported, err := s.ImportLists(ctx, payload)
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "bare", imported[0].Name)
	assert.False(t, imported[0].CreatedAt.IsZero())
}

func TestImportLists_GarbageFailsWholesale(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.ImportLists(ctx, []byte("{not json"))
	require.Error(t, err)
	assert.True(t, apperror.IsParse(err))
	assert.Empty(t, s.Lists())
}

func TestImportLists_SanitizesFieldsAndFolderRefs(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	ghost := id.New()
	payload := []byte(`[{"name":"","status":"bogus","priority":"???","folderId":"` + ghost.String() + `"}]`)
	imported, err := s.ImportLists(ctx, payload)
	require.NoError(t, err)
	require.Len(t, imported, 1)

	got := imported[0]
	assert.Equal(t, "Untitled List", got.Name)
	assert.Equal(t, list.StatusDraft, got.Status)
	assert.Equal(t, list.PriorityNormal, got.Priority)
	assert.Nil(t, got.FolderID)
	assert.NotNil(t, got.Items)
}
