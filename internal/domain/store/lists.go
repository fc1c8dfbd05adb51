package store

import (
	"context"
	"fmt"
	"time"

	"stokpano/internal/core/apperror"
	"stokpano/internal/core/entity"
	"stokpano/internal/core/id"
	"stokpano/internal/domain/list"
	"stokpano/internal/domain/notify"
)

// CreateListInput carries the caller-supplied fields for a new list.
// Everything is optional; defaults always apply.
type CreateListInput struct {
	Name        string
	Description string
	FolderID    *id.ID
	Status      list.Status
	Priority    list.Priority
	Tags        []string
	DueDate     *time.Time
	Items       []list.ItemInput
}

// CreateList appends a new active list with defaults filled in. It cannot
// fail: missing fields are defaulted, and a folder reference that does not
// name an active folder is dropped.
func (s *Store) CreateList(ctx context.Context, in CreateListInput) *list.PurchaseList {
	now := s.now()
	l := list.New(in.Name, now)
	l.Description = in.Description
	if list.ValidStatus(in.Status) {
		l.Status = in.Status
	}
	if list.ValidPriority(in.Priority) {
		l.Priority = in.Priority
	}
	if len(in.Tags) > 0 {
		l.Tags = append([]string(nil), in.Tags...)
	}
	if in.DueDate != nil {
		due := *in.DueDate
		l.DueDate = &due
	}
	for _, it := range in.Items {
		l.Items = append(l.Items, list.NewItem(it, now))
	}

	s.mu.Lock()
	if in.FolderID != nil && s.activeFolderLocked(*in.FolderID) != nil {
		fid := *in.FolderID
		l.FolderID = &fid
	}
	s.lists = append(s.lists, l)
	s.listsChangedLocked()
	out := l.Clone()
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "List created", out.Name, nil)
	return out
}

// UpdateList merges the patch into the matching active list. Unknown ids are
// a silent no-op.
func (s *Store) UpdateList(ctx context.Context, listID id.ID, patch list.Patch) {
	s.mu.Lock()
	l := s.activeListLocked(listID)
	if l == nil {
		s.mu.Unlock()
		return
	}
	s.coerceFolderRefLocked(&patch)
	patch.Apply(l)
	l.Touch(s.now())
	s.listsChangedLocked()
	name := l.Name
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "List updated", name, nil)
}

// DeleteList archives the matching active list, or, when permanent, erases
// the entry irreversibly. A permanent delete looks in the archive first and
// falls through to the active collection, so "delete forever" works from
// either place. Unknown ids are a silent no-op.
func (s *Store) DeleteList(ctx context.Context, listID id.ID, permanent bool) {
	s.mu.Lock()
	if permanent {
		removed := s.removeArchivedListLocked(listID) || s.removeActiveListLocked(listID)
		if !removed {
			s.mu.Unlock()
			return
		}
		s.listsChangedLocked()
		s.mu.Unlock()
		s.emit(notify.LevelInfo, "List permanently deleted", "", nil)
		return
	}

	l := s.activeListLocked(listID)
	if l == nil {
		s.mu.Unlock()
		return
	}
	l.MarkDeleted(s.now(), actorFrom(ctx))
	s.removeActiveListLocked(listID)
	s.archivedLists = append(s.archivedLists, l)
	s.listsChangedLocked()
	name := l.Name
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "List moved to archive", name,
		&notify.Undo{Entity: "list", ID: listID})
}

// RestoreList moves a list from the archive back to the active collection.
// A folder reference that no longer names an active folder is cleared.
func (s *Store) RestoreList(ctx context.Context, listID id.ID) {
	s.mu.Lock()
	l := s.archivedListLocked(listID)
	if l == nil {
		s.mu.Unlock()
		return
	}
	l.Restore(s.now())
	if l.FolderID != nil && s.activeFolderLocked(*l.FolderID) == nil {
		l.FolderID = nil
	}
	s.removeArchivedListLocked(listID)
	s.lists = append(s.lists, l)
	s.listsChangedLocked()
	name := l.Name
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "List restored", name, nil)
}

// DuplicateList clones an active list under a new identity: fresh id and
// timestamps, name suffixed, status reset to draft.
func (s *Store) DuplicateList(ctx context.Context, listID id.ID) (*list.PurchaseList, error) {
	now := s.now()

	s.mu.Lock()
	src := s.activeListLocked(listID)
	if src == nil {
		s.mu.Unlock()
		return nil, apperror.NewNotFound("list", listID.String())
	}
	dup := src.Clone()
	dup.Base = entity.NewBase(now)
	dup.Name = src.Name + " (copy)"
	dup.Status = list.StatusDraft
	s.lists = append(s.lists, dup)
	s.listsChangedLocked()
	out := dup.Clone()
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "List duplicated", out.Name, nil)
	return out, nil
}

// MergeLists appends the items of every source list (in source order) to the
// target, then removes the sources from the active collection entirely. The
// merge destroys the source identities; they do not pass through the
// archive. Unknown sources and an unknown target are silent no-ops.
func (s *Store) MergeLists(ctx context.Context, sourceIDs []id.ID, targetID id.ID) {
	s.mu.Lock()
	target := s.activeListLocked(targetID)
	if target == nil {
		s.mu.Unlock()
		return
	}
	merged := 0
	for _, sid := range sourceIDs {
		if sid == targetID {
			continue
		}
		src := s.activeListLocked(sid)
		if src == nil {
			continue
		}
		for _, it := range src.Items {
			// Item ids are unique only within their list; re-key on the way in
			// so two merged lists cannot collide.
			it.ID = id.New()
			target.Items = append(target.Items, it)
		}
		s.removeActiveListLocked(sid)
		merged++
	}
	if merged == 0 {
		s.mu.Unlock()
		return
	}
	target.Touch(s.now())
	s.listsChangedLocked()
	name := target.Name
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "Lists merged",
		fmt.Sprintf("%d list(s) merged into %s", merged, name), nil)
}

// BulkUpdateLists applies the patch to every matching active list, skipping
// unknown ids silently.
func (s *Store) BulkUpdateLists(ctx context.Context, listIDs []id.ID, patch list.Patch) {
	s.mu.Lock()
	s.coerceFolderRefLocked(&patch)
	now := s.now()
	updated := 0
	for _, lid := range listIDs {
		l := s.activeListLocked(lid)
		if l == nil {
			continue
		}
		patch.Apply(l)
		l.Touch(now)
		updated++
	}
	if updated == 0 {
		s.mu.Unlock()
		return
	}
	s.listsChangedLocked()
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "Lists updated", fmt.Sprintf("%d list(s) updated", updated), nil)
}

// BulkDeleteLists archives every matching active list, skipping unknown ids
// silently.
func (s *Store) BulkDeleteLists(ctx context.Context, listIDs []id.ID) {
	s.mu.Lock()
	now := s.now()
	actor := actorFrom(ctx)
	deleted := 0
	for _, lid := range listIDs {
		l := s.activeListLocked(lid)
		if l == nil {
			continue
		}
		l.MarkDeleted(now, actor)
		s.removeActiveListLocked(lid)
		s.archivedLists = append(s.archivedLists, l)
		deleted++
	}
	if deleted == 0 {
		s.mu.Unlock()
		return
	}
	s.listsChangedLocked()
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "Lists moved to archive",
		fmt.Sprintf("%d list(s) archived", deleted), nil)
}

// coerceFolderRefLocked rewrites a patch whose folder target is not an
// active folder into an unfile, upholding the weak-reference invariant.
func (s *Store) coerceFolderRefLocked(patch *list.Patch) {
	if patch.FolderID == nil || id.IsNil(*patch.FolderID) {
		return
	}
	if s.activeFolderLocked(*patch.FolderID) == nil {
		nilID := id.Nil()
		patch.FolderID = &nilID
	}
}

func (s *Store) removeActiveListLocked(listID id.ID) bool {
	for i, l := range s.lists {
		if l.ID == listID {
			s.lists = append(s.lists[:i], s.lists[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) removeArchivedListLocked(listID id.ID) bool {
	for i, l := range s.archivedLists {
		if l.ID == listID {
			s.archivedLists = append(s.archivedLists[:i], s.archivedLists[i+1:]...)
			return true
		}
	}
	return false
}
