package store

import (
	"context"
	"fmt"

	"stokpano/internal/core/id"
	"stokpano/internal/domain/list"
	"stokpano/internal/domain/notify"
)

// AddItemsToList appends new lines, seeded from stock-analysis output, to
// the addressed active list. Returns the created items, or nil when the list
// is unknown (silent no-op).
func (s *Store) AddItemsToList(ctx context.Context, listID id.ID, inputs []list.ItemInput) []list.Item {
	if len(inputs) == 0 {
		return nil
	}

	s.mu.Lock()
	l := s.activeListLocked(listID)
	if l == nil {
		s.mu.Unlock()
		return nil
	}
	now := s.now()
	added := make([]list.Item, 0, len(inputs))
	for _, in := range inputs {
		it := list.NewItem(in, now)
		l.Items = append(l.Items, it)
		added = append(added, it)
	}
	l.Touch(now)
	s.listsChangedLocked()
	name := l.Name
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "Items added",
		fmt.Sprintf("%d item(s) added to %s", len(added), name), nil)
	return added
}

// RemoveItemFromList deletes a single line from the addressed active list.
// Unknown list or item ids are silent no-ops.
func (s *Store) RemoveItemFromList(ctx context.Context, listID, itemID id.ID) {
	s.mu.Lock()
	l := s.activeListLocked(listID)
	if l == nil {
		s.mu.Unlock()
		return
	}
	removed := false
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		s.mu.Unlock()
		return
	}
	l.Touch(s.now())
	s.listsChangedLocked()
	name := l.Name
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "Item removed", name, nil)
}

// UpdateListItem merges the patch into a single line of the addressed active
// list. Unknown list or item ids are silent no-ops.
func (s *Store) UpdateListItem(ctx context.Context, listID, itemID id.ID, patch list.ItemPatch) {
	s.mu.Lock()
	l := s.activeListLocked(listID)
	if l == nil {
		s.mu.Unlock()
		return
	}
	it := l.ItemByID(itemID)
	if it == nil {
		s.mu.Unlock()
		return
	}
	patch.Apply(it)
	l.Touch(s.now())
	s.listsChangedLocked()
	name := l.Name
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "Item updated", name, nil)
}

// MoveItems splices the addressed items out of the source list and appends
// them to the target list in one synchronous step; no intermediate state is
// observable. Items whose ids are not on the source are skipped. Unknown
// source or target lists are silent no-ops.
func (s *Store) MoveItems(ctx context.Context, sourceID, targetID id.ID, itemIDs []id.ID) {
	if sourceID == targetID || len(itemIDs) == 0 {
		return
	}

	s.mu.Lock()
	src := s.activeListLocked(sourceID)
	dst := s.activeListLocked(targetID)
	if src == nil || dst == nil {
		s.mu.Unlock()
		return
	}

	wanted := make(map[id.ID]bool, len(itemIDs))
	for _, iid := range itemIDs {
		wanted[iid] = true
	}

	kept := src.Items[:0]
	moved := 0
	for _, it := range src.Items {
		if wanted[it.ID] {
			dst.Items = append(dst.Items, it)
			moved++
		} else {
			kept = append(kept, it)
		}
	}
	if moved == 0 {
		s.mu.Unlock()
		return
	}
	src.Items = kept

	now := s.now()
	src.Touch(now)
	dst.Touch(now)
	s.listsChangedLocked()
	srcName, dstName := src.Name, dst.Name
	s.mu.Unlock()

	s.emit(notify.LevelSuccess, "Items moved",
		fmt.Sprintf("%d item(s) moved from %s to %s", moved, srcName, dstName), nil)
}
