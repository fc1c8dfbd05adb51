// Package stats is the aggregation engine: it derives global statistics and
// per-folder rollups from the active collections. It never mutates lists;
// the only thing it writes back are the cached rollup fields on folders.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"stokpano/internal/core/id"
	"stokpano/internal/domain/folder"
	"stokpano/internal/domain/list"
)

// Statistics is the derived global view over the active-list collection.
// It is recomputed wholesale after every change, never stored.
type Statistics struct {
	TotalLists int                   `json:"totalLists"`
	ByStatus   map[list.Status]int   `json:"byStatus"`
	ByPriority map[list.Priority]int `json:"byPriority"`

	TotalItems int             `json:"totalItems"`
	TotalValue decimal.Decimal `json:"totalValue"`

	// PendingApproval holds the ids of active lists awaiting approval.
	PendingApproval []id.ID `json:"pendingApproval"`

	// UpcomingDue holds the ids of active lists due strictly in the future.
	UpcomingDue []id.ID `json:"upcomingDue"`

	ComputedAt time.Time `json:"computedAt"`
}

// Compute derives Statistics from the active lists.
func Compute(active []*list.PurchaseList, now time.Time) Statistics {
	s := Statistics{
		TotalLists: len(active),
		ByStatus:   make(map[list.Status]int, len(list.Statuses())),
		ByPriority: make(map[list.Priority]int, len(list.Priorities())),
		TotalValue: decimal.Zero,
		ComputedAt: now,
	}
	for _, st := range list.Statuses() {
		s.ByStatus[st] = 0
	}
	for _, p := range list.Priorities() {
		s.ByPriority[p] = 0
	}

	for _, l := range active {
		s.ByStatus[l.Status]++
		s.ByPriority[l.Priority]++
		s.TotalItems += l.TotalItems()
		s.TotalValue = s.TotalValue.Add(l.TotalValue())

		if l.Status == list.StatusPending {
			s.PendingApproval = append(s.PendingApproval, l.ID)
		}
		if l.DueDate != nil && l.DueDate.After(now) {
			s.UpcomingDue = append(s.UpcomingDue, l.ID)
		}
	}
	return s
}

// Rollup recomputes the cached counters of every active folder from the
// active lists filed under it. Only folders whose values actually differ are
// written back; the returned count says how many changed, so the caller can
// skip persisting folders when nothing moved.
func Rollup(active []*list.PurchaseList, folders []*folder.Folder) int {
	type agg struct {
		lists int
		items int
		value decimal.Decimal
	}
	byFolder := make(map[id.ID]agg, len(folders))

	for _, l := range active {
		if l.FolderID == nil {
			continue
		}
		a := byFolder[*l.FolderID]
		a.lists++
		a.items += l.TotalItems()
		a.value = a.value.Add(l.TotalValue())
		byFolder[*l.FolderID] = a
	}

	changed := 0
	for _, f := range folders {
		a, ok := byFolder[f.ID]
		if !ok {
			a = agg{value: decimal.Zero}
		}
		if f.ListCount != a.lists || f.TotalItems != a.items || !f.TotalValue.Equal(a.value) {
			f.ListCount = a.lists
			f.TotalItems = a.items
			f.TotalValue = a.value
			changed++
		}
	}
	return changed
}
