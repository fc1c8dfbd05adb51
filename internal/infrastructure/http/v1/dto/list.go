package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"stokpano/internal/core/apperror"
	"stokpano/internal/core/id"
	"stokpano/internal/domain/list"
	"stokpano/internal/domain/store"
)

// --- Request DTOs ---

// ItemRequest is one product line as sent by the stock-analysis screens.
type ItemRequest struct {
	StockCode         string           `json:"stokKodu" binding:"required"`
	StockName         string           `json:"stokIsmi"`
	Quantity          float64          `json:"quantity"`
	SuggestedQuantity float64          `json:"suggestedQuantity"`
	CurrentStock      float64          `json:"currentStock"`
	Unit              string           `json:"unit"`
	EstimatedPrice    *decimal.Decimal `json:"estimatedPrice"`
	Priority          list.Priority    `json:"priority"`
	Notes             string           `json:"notes"`
}

// ToInput converts DTO to a domain item input.
func (r ItemRequest) ToInput() list.ItemInput {
	return list.ItemInput{
		StockCode:         r.StockCode,
		StockName:         r.StockName,
		Quantity:          r.Quantity,
		SuggestedQuantity: r.SuggestedQuantity,
		CurrentStock:      r.CurrentStock,
		Unit:              r.Unit,
		EstimatedPrice:    r.EstimatedPrice,
		Priority:          r.Priority,
		Notes:             r.Notes,
	}
}

// CreateListRequest is the request body for creating a list.
type CreateListRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	FolderID    *string       `json:"folderId"`
	Status      list.Status   `json:"status"`
	Priority    list.Priority `json:"priority"`
	Tags        []string      `json:"tags"`
	DueDate     *time.Time    `json:"dueDate"`
	Items       []ItemRequest `json:"items"`
}

// ToInput converts DTO to a store input.
func (r CreateListRequest) ToInput() (store.CreateListInput, error) {
	in := store.CreateListInput{
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		Tags:        r.Tags,
		DueDate:     r.DueDate,
	}
	if r.FolderID != nil && *r.FolderID != "" {
		fid, err := id.Parse(*r.FolderID)
		if err != nil {
			return in, apperror.NewValidation("invalid folderId").WithDetail("value", *r.FolderID)
		}
		in.FolderID = &fid
	}
	for _, it := range r.Items {
		in.Items = append(in.Items, it.ToInput())
	}
	return in, nil
}

// UpdateListRequest is the request body for patching a list.
// Absent fields are left untouched; folderId "" unfiles the list.
type UpdateListRequest struct {
	Name         *string        `json:"name"`
	Description  *string        `json:"description"`
	FolderID     *string        `json:"folderId"`
	Status       *list.Status   `json:"status"`
	Priority     *list.Priority `json:"priority"`
	Tags         *[]string      `json:"tags"`
	DueDate      *time.Time     `json:"dueDate"`
	ClearDueDate bool           `json:"clearDueDate"`
}

// ToPatch converts DTO to a domain patch.
func (r UpdateListRequest) ToPatch() (list.Patch, error) {
	p := list.Patch{
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		Tags:        r.Tags,
		DueDate:     r.DueDate,
	}
	if r.FolderID != nil {
		if *r.FolderID == "" {
			nilID := id.Nil()
			p.FolderID = &nilID
		} else {
			fid, err := id.Parse(*r.FolderID)
			if err != nil {
				return p, apperror.NewValidation("invalid folderId").WithDetail("value", *r.FolderID)
			}
			p.FolderID = &fid
		}
	}
	if r.ClearDueDate {
		var zero time.Time
		p.DueDate = &zero
	}
	return p, nil
}

// UpdateItemRequest is the request body for patching a single line.
type UpdateItemRequest struct {
	Quantity       *float64         `json:"quantity"`
	EstimatedPrice *decimal.Decimal `json:"estimatedPrice"`
	Priority       *list.Priority   `json:"priority"`
	Status         *list.ItemStatus `json:"status"`
	Notes          *string          `json:"notes"`
}

// ToPatch converts DTO to a domain item patch.
func (r UpdateItemRequest) ToPatch() list.ItemPatch {
	return list.ItemPatch{
		Quantity:       r.Quantity,
		EstimatedPrice: r.EstimatedPrice,
		Priority:       r.Priority,
		Status:         r.Status,
		Notes:          r.Notes,
	}
}

// AddItemsRequest is the request body for appending lines to a list.
type AddItemsRequest struct {
	Items []ItemRequest `json:"items" binding:"required"`
}

// MoveItemsRequest is the request body for moving lines between lists.
type MoveItemsRequest struct {
	TargetID string   `json:"targetId" binding:"required"`
	ItemIDs  []string `json:"itemIds" binding:"required"`
}

// MergeListsRequest is the request body for merging lists.
type MergeListsRequest struct {
	SourceIDs []string `json:"sourceIds" binding:"required"`
	TargetID  string   `json:"targetId" binding:"required"`
}

// BulkUpdateRequest is the request body for a bulk patch.
type BulkUpdateRequest struct {
	IDs   []string          `json:"ids" binding:"required"`
	Patch UpdateListRequest `json:"patch"`
}

// BulkDeleteRequest is the request body for a bulk archive.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// ParseIDs converts a string id slice, rejecting malformed entries.
func ParseIDs(raw []string) ([]id.ID, error) {
	out := make([]id.ID, 0, len(raw))
	for _, s := range raw {
		parsed, err := id.Parse(s)
		if err != nil {
			return nil, apperror.NewValidation("invalid id").WithDetail("value", s)
		}
		out = append(out, parsed)
	}
	return out, nil
}
