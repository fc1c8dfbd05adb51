package store

import (
	"context"
	"fmt"

	"stokpano/internal/core/id"
	"stokpano/internal/domain/folder"
	"stokpano/internal/domain/notify"
)

// CreateFolderInput carries the caller-supplied fields for a new folder.
type CreateFolderInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
	Tags        []string
}

// CreateFolder appends a new active folder with defaults filled in.
func (s *Store) CreateFolder(ctx context.Context, in CreateFolderInput) *folder.Folder {
	f := folder.New(in.Name, s.now())
	f.Description = in.Description
	if in.Color != "" {
		f.Color = in.Color
	}
	if in.Icon != "" {
		f.Icon = in.Icon
	}
	if len(in.Tags) > 0 {
		f.Tags = append([]string(nil), in.Tags...)
	}

	s.mu.Lock()
	s.folders = append(s.folders, f)
	s.foldersChangedLocked()
	out := f.Clone()
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "Folder created", out.Name, nil)
	return out
}

// UpdateFolder merges the patch into the matching active folder. Unknown ids
// are a silent no-op.
func (s *Store) UpdateFolder(ctx context.Context, folderID id.ID, patch folder.Patch) {
	s.mu.Lock()
	f := s.activeFolderLocked(folderID)
	if f == nil {
		s.mu.Unlock()
		return
	}
	patch.Apply(f)
	f.Touch(s.now())
	s.foldersChangedLocked()
	name := f.Name
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "Folder updated", name, nil)
}

// DeleteFolder archives the matching active folder, first unfiling every
// active list that references it: the weak-reference invariant says no
// active list may point at an archived folder, and that is enforced here in
// the same synchronous step, not detected after the fact. A permanent delete
// erases the entry from the archive (falling through to the active
// collection, mirroring DeleteList).
func (s *Store) DeleteFolder(ctx context.Context, folderID id.ID, permanent bool) {
	s.mu.Lock()
	if permanent {
		removed := s.removeArchivedFolderLocked(folderID)
		if !removed {
			if f := s.activeFolderLocked(folderID); f != nil {
				s.unfileListsLocked(folderID)
				s.removeActiveFolderLocked(folderID)
				removed = true
			}
		}
		if !removed {
			s.mu.Unlock()
			return
		}
		s.foldersChangedLocked()
		s.mu.Unlock()
		s.emit(notify.LevelInfo, "Folder permanently deleted", "", nil)
		return
	}

	f := s.activeFolderLocked(folderID)
	if f == nil {
		s.mu.Unlock()
		return
	}
	unfiled := s.unfileListsLocked(folderID)
	f.MarkDeleted(s.now(), actorFrom(ctx))
	s.removeActiveFolderLocked(folderID)
	s.archivedFolders = append(s.archivedFolders, f)
	s.foldersChangedLocked()
	name := f.Name
	s.mu.Unlock()

	desc := name
	if unfiled > 0 {
		desc = fmt.Sprintf("%s (%d list(s) unfiled)", name, unfiled)
	}
	s.emit(notify.LevelSuccess, "Folder moved to archive", desc,
		&notify.Undo{Entity: "folder", ID: folderID})
}

// RestoreFolder moves a folder from the archive back to the active
// collection. Lists unfiled by the archival stay unfiled; the rollup
// counters are recomputed from whatever is filed under the folder now.
func (s *Store) RestoreFolder(ctx context.Context, folderID id.ID) {
	s.mu.Lock()
	f := s.archivedFolderLocked(folderID)
	if f == nil {
		s.mu.Unlock()
		return
	}
	f.Restore(s.now())
	s.removeArchivedFolderLocked(folderID)
	s.folders = append(s.folders, f)
	s.foldersChangedLocked()
	name := f.Name
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "Folder restored", name, nil)
}

// unfileListsLocked clears the folder reference on every active list that
// points at the folder. Returns how many lists were touched; when any were,
// the lists collection is re-derived and mirrored too.
func (s *Store) unfileListsLocked(folderID id.ID) int {
	now := s.now()
	unfiled := 0
	for _, l := range s.lists {
		if l.FolderID != nil && *l.FolderID == folderID {
			l.FolderID = nil
			l.Touch(now)
			unfiled++
		}
	}
	if unfiled > 0 {
		s.listsChangedLocked()
	}
	return unfiled
}

func (s *Store) removeActiveFolderLocked(folderID id.ID) bool {
	for i, f := range s.folders {
		if f.ID == folderID {
			s.folders = append(s.folders[:i], s.folders[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) removeArchivedFolderLocked(folderID id.ID) bool {
	for i, f := range s.archivedFolders {
		if f.ID == folderID {
			s.archivedFolders = append(s.archivedFolders[:i], s.archivedFolders[i+1:]...)
			return true
		}
	}
	return false
}
