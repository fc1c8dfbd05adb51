package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stokpano/internal/core/id"
	"stokpano/internal/domain/folder"
	"stokpano/internal/domain/list"
)

func TestCreateFolder_Defaults(t *testing.T) {
	s, _ := newTestStore(t)

	f := s.CreateFolder(context.Background(), CreateFolderInput{Name: "Kritik"})

	assert.Equal(t, "Kritik", f.Name)
	assert.Equal(t, folder.DefaultColor, f.Color)
	assert.Equal(t, folder.DefaultIcon, f.Icon)
	assert.Equal(t, 0, f.ListCount)
	require.Len(t, s.Folders(), 1)
}

func TestUpdateFolder(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	f := s.CreateFolder(ctx, CreateFolderInput{Name: "old"})

	name := "new"
	color := "#ff0000"
	s.UpdateFolder(ctx, f.ID, folder.Patch{Name: &name, Color: &color})

	got, ok := s.GetFolderByID(f.ID)
	require.True(t, ok)
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, "#ff0000", got.Color)
}

func TestDeleteFolder_UnfilesReferencingLists(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	f := s.CreateFolder(ctx, CreateFolderInput{Name: "f"})
	filed := s.CreateList(ctx, CreateListInput{Name: "filed", FolderID: &f.ID})
	loose := s.CreateList(ctx, CreateListInput{Name: "loose"})
	require.NotNil(t, filed.FolderID)

	s.DeleteFolder(ctx, f.ID, false)

	assert.Empty(t, s.Folders())
	require.Len(t, s.ArchivedFolders(), 1)

	// The filed list stays active but loses its reference.
	got, ok := s.GetListByID(filed.ID)
	require.True(t, ok)
	assert.Nil(t, got.FolderID)
	assert.True(t, got.UpdatedAt.After(filed.UpdatedAt))

	other, _ := s.GetListByID(loose.ID)
	assert.Equal(t, loose.UpdatedAt, other.UpdatedAt)
}

func TestRestoreFolder_UnfiledListsStayUnfiled(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	f := s.CreateFolder(ctx, CreateFolderInput{Name: "f"})
	filed := s.CreateList(ctx, CreateListInput{Name: "filed", FolderID: &f.ID})

	s.DeleteFolder(ctx, f.ID, false)
	s.RestoreFolder(ctx, f.ID)

	require.Len(t, s.Folders(), 1)
	got, _ := s.GetListByID(filed.ID)
	assert.Nil(t, got.FolderID)

	restored, ok := s.GetFolderByID(f.ID)
	require.True(t, ok)
	assert.Equal(t, 0, restored.ListCount)
}

func TestDeleteFolder_PermanentFromActive(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	f := s.CreateFolder(ctx, CreateFolderInput{Name: "f"})
	filed := s.CreateList(ctx, CreateListInput{Name: "filed", FolderID: &f.ID})

	s.DeleteFolder(ctx, f.ID, true)

	assert.Empty(t, s.Folders())
	assert.Empty(t, s.ArchivedFolders())
	got, _ := s.GetListByID(filed.ID)
	assert.Nil(t, got.FolderID)
}

func TestFolderRollups(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	f := s.CreateFolder(ctx, CreateFolderInput{Name: "f"})

	price := decimal.NewFromInt(3)
	s.CreateList(ctx, CreateListInput{Name: "a", FolderID: &f.ID, Items: []list.ItemInput{
		{StockCode: "A", Quantity: 2, EstimatedPrice: &price},
	}})
	b := s.CreateList(ctx, CreateListInput{Name: "b", FolderID: &f.ID, Items: []list.ItemInput{
		{StockCode: "B", Quantity: 1},
		{StockCode: "C", Quantity: 1},
	}})

	got, ok := s.GetFolderByID(f.ID)
	require.True(t, ok)
	assert.Equal(t, 2, got.ListCount)
	assert.Equal(t, 3, got.TotalItems)
	assert.True(t, got.TotalValue.Equal(decimal.NewFromInt(6)))

	// Archiving a filed list shrinks the rollup.
	s.DeleteList(ctx, b.ID, false)
	got, _ = s.GetFolderByID(f.ID)
	assert.Equal(t, 1, got.ListCount)
	assert.Equal(t, 1, got.TotalItems)
}

func TestUpdateList_MoveIntoAndOutOfFolder(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	f := s.CreateFolder(ctx, CreateFolderInput{Name: "f"})
	l := s.CreateList(ctx, CreateListInput{Name: "l"})

	fid := f.ID
	s.UpdateList(ctx, l.ID, list.Patch{FolderID: &fid})
	got, _ := s.GetListByID(l.ID)
	require.NotNil(t, got.FolderID)
	assert.Equal(t, f.ID, *got.FolderID)

	inFolder := s.ListsInFolder(f.ID)
	require.Len(t, inFolder, 1)
	assert.Equal(t, l.ID, inFolder[0].ID)

	// The nil id unfiles.
	unfile := id.Nil()
	s.UpdateList(ctx, l.ID, list.Patch{FolderID: &unfile})
	got, _ = s.GetListByID(l.ID)
	assert.Nil(t, got.FolderID)
}

func TestUpdateList_FolderRefToArchivedFolderIsDropped(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	f := s.CreateFolder(ctx, CreateFolderInput{Name: "f"})
	l := s.CreateList(ctx, CreateListInput{Name: "l"})
	s.DeleteFolder(ctx, f.ID, false)

	fid := f.ID
	s.UpdateList(ctx, l.ID, list.Patch{FolderID: &fid})

	got, _ := s.GetListByID(l.ID)
	assert.Nil(t, got.FolderID)
}
