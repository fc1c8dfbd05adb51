package list

import (
	"time"

	"github.com/shopspring/decimal"

	"stokpano/internal/core/id"
)

// Patch is a partial update for a PurchaseList. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string

	// FolderID moves the list between folders. A non-nil pointer holding the
	// nil UUID unfiles the list.
	FolderID *id.ID

	Status   *Status
	Priority *Priority
	Tags     *[]string

	// DueDate replaces the due date. A non-nil pointer holding the zero time
	// clears it.
	DueDate *time.Time
}

// Apply merges the patch into the list. Invalid enum values are ignored so a
// stale UI payload cannot corrupt the entity.
func (p Patch) Apply(l *PurchaseList) {
	if p.Name != nil && *p.Name != "" {
		l.Name = *p.Name
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.FolderID != nil {
		if id.IsNil(*p.FolderID) {
			l.FolderID = nil
		} else {
			fid := *p.FolderID
			l.FolderID = &fid
		}
	}
	if p.Status != nil && ValidStatus(*p.Status) {
		l.Status = *p.Status
	}
	if p.Priority != nil && ValidPriority(*p.Priority) {
		l.Priority = *p.Priority
	}
	if p.Tags != nil {
		l.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			l.DueDate = nil
		} else {
			due := *p.DueDate
			l.DueDate = &due
		}
	}
}

// ItemInput seeds a new line from the stock-analysis pipeline output.
type ItemInput struct {
	StockCode         string
	StockName         string
	Quantity          float64
	SuggestedQuantity float64
	CurrentStock      float64
	Unit              string
	EstimatedPrice    *decimal.Decimal
	Priority          Priority
	Notes             string
}

// NewItem builds an Item from input, applying defaults.
func NewItem(in ItemInput, now time.Time) Item {
	qty := in.Quantity
	if qty == 0 {
		qty = in.SuggestedQuantity
	}
	prio := in.Priority
	if !ValidPriority(prio) {
		prio = PriorityNormal
	}
	return Item{
		ID:                id.New(),
		StockCode:         in.StockCode,
		StockName:         in.StockName,
		Quantity:          qty,
		SuggestedQuantity: in.SuggestedQuantity,
		CurrentStock:      in.CurrentStock,
		Unit:              in.Unit,
		EstimatedPrice:    in.EstimatedPrice,
		IsModified:        qty != in.SuggestedQuantity,
		Priority:          prio,
		Status:            ItemStatusPending,
		Notes:             in.Notes,
		AddedAt:           now,
	}
}

// ItemPatch is a partial update for a single line.
type ItemPatch struct {
	Quantity       *float64
	EstimatedPrice *decimal.Decimal
	Priority       *Priority
	Status         *ItemStatus
	Notes          *string
}

// Apply merges the patch into the item.
func (p ItemPatch) Apply(it *Item) {
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
		it.IsModified = it.Quantity != it.SuggestedQuantity
	}
	if p.EstimatedPrice != nil {
		price := *p.EstimatedPrice
		it.EstimatedPrice = &price
	}
	if p.Priority != nil && ValidPriority(*p.Priority) {
		it.Priority = *p.Priority
	}
	if p.Status != nil && ValidItemStatus(*p.Status) {
		it.Status = *p.Status
	}
	if p.Notes != nil {
		it.Notes = *p.Notes
	}
}
