// Package list provides the PurchaseList entity and its line items.
// A purchase list is built from stock-analysis suggestions and walks through
// an approval/ordering lifecycle before it is completed or cancelled.
package list

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"stokpano/internal/core/apperror"
	"stokpano/internal/core/entity"
	"stokpano/internal/core/id"
)

// Status is the lifecycle state of a purchase list.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusOrdered   Status = "ordered"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses returns every valid status, in lifecycle order.
func Statuses() []Status {
	return []Status{StatusDraft, StatusPending, StatusApproved, StatusOrdered, StatusCompleted, StatusCancelled}
}

// Priority ranks a list for the purchasing team.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities returns every valid priority, lowest first.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
}

// ItemStatus is the per-line fulfilment state.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusOrdered   ItemStatus = "ordered"
	ItemStatusReceived  ItemStatus = "received"
	ItemStatusCancelled ItemStatus = "cancelled"
)

// Item is a single product line on a purchase list. Items are owned by their
// list and have no lifecycle of their own; the item id is unique only within
// the owning list.
type Item struct {
	ID id.ID `json:"id"`

	// Product identity as supplied by the stock-analysis pipeline.
	// The store never recomputes or validates these values.
	StockCode string `json:"stokKodu"`
	StockName string `json:"stokIsmi"`

	Quantity          float64 `json:"quantity"`
	SuggestedQuantity float64 `json:"suggestedQuantity"`
	CurrentStock      float64 `json:"currentStock"`
	Unit              string  `json:"unit"`

	EstimatedPrice *decimal.Decimal `json:"estimatedPrice,omitempty"`

	// IsModified is true when quantity was hand-edited away from the
	// suggestion at add time.
	IsModified bool `json:"isModified"`

	Priority Priority   `json:"priority"`
	Status   ItemStatus `json:"status"`
	Notes    string     `json:"notes,omitempty"`

	AddedAt time.Time `json:"addedAt"`
}

// Value returns the line value (estimated price x quantity), zero when the
// price is unknown.
func (i Item) Value() decimal.Decimal {
	if i.EstimatedPrice == nil {
		return decimal.Zero
	}
	return i.EstimatedPrice.Mul(decimal.NewFromFloat(i.Quantity))
}

// PurchaseList is the aggregate the dashboard works with.
type PurchaseList struct {
	entity.Base

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// FolderID is a weak reference to an active folder; nil means unfiled.
	FolderID *id.ID `json:"folderId,omitempty"`

	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`

	// Items keeps insertion order; the UI displays them in this order.
	Items []Item `json:"items"`

	// Tags is caller-owned; the store does not deduplicate.
	Tags []string `json:"tags,omitempty"`

	DueDate *time.Time `json:"dueDate,omitempty"`
}

// New creates a PurchaseList with defaults applied.
func New(name string, now time.Time) *PurchaseList {
	if name == "" {
		name = "Untitled List"
	}
	return &PurchaseList{
		Base:     entity.NewBase(now),
		Name:     name,
		Status:   StatusDraft,
		Priority: PriorityNormal,
		Items:    []Item{},
	}
}

// Validate implements entity invariant checks.
func (l *PurchaseList) Validate(ctx context.Context) error {
	if l.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !ValidStatus(l.Status) {
		return apperror.NewValidation("invalid list status").
			WithDetail("field", "status").
			WithDetail("value", string(l.Status))
	}
	if !ValidPriority(l.Priority) {
		return apperror.NewValidation("invalid list priority").
			WithDetail("field", "priority").
			WithDetail("value", string(l.Priority))
	}
	return nil
}

// ItemByID returns a pointer into Items, or nil.
func (l *PurchaseList) ItemByID(itemID id.ID) *Item {
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			return &l.Items[i]
		}
	}
	return nil
}

// TotalItems returns the number of lines on the list.
func (l *PurchaseList) TotalItems() int {
	return len(l.Items)
}

// TotalValue sums the line values of the list.
func (l *PurchaseList) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for i := range l.Items {
		total = total.Add(l.Items[i].Value())
	}
	return total
}

// Clone returns a deep copy of the list.
func (l *PurchaseList) Clone() *PurchaseList {
	out := *l
	out.Items = make([]Item, len(l.Items))
	copy(out.Items, l.Items)
	if l.Tags != nil {
		out.Tags = append([]string(nil), l.Tags...)
	}
	if l.FolderID != nil {
		fid := *l.FolderID
		out.FolderID = &fid
	}
	if l.DueDate != nil {
		due := *l.DueDate
		out.DueDate = &due
	}
	if l.DeletedAt != nil {
		del := *l.DeletedAt
		out.DeletedAt = &del
	}
	for i := range out.Items {
		if p := out.Items[i].EstimatedPrice; p != nil {
			cp := *p
			out.Items[i].EstimatedPrice = &cp
		}
	}
	return &out
}

// --- Validation helpers ---

func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusOrdered, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func ValidItemStatus(s ItemStatus) bool {
	switch s {
	case ItemStatusPending, ItemStatusOrdered, ItemStatusReceived, ItemStatusCancelled:
		return true
	}
	return false
}
