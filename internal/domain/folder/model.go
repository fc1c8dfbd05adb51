// Package folder provides the Folder entity that groups purchase lists.
package folder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"stokpano/internal/core/apperror"
	"stokpano/internal/core/entity"
)

// Folder groups purchase lists in the dashboard sidebar.
//
// ListCount, TotalItems and TotalValue are cached rollups over the active
// lists filed under the folder. They are not authoritative: the aggregation
// engine overwrites them after every active-list change.
type Folder struct {
	entity.Base

	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Color       string   `json:"color"`
	Icon        string   `json:"icon"`
	Tags        []string `json:"tags,omitempty"`

	ListCount  int             `json:"listCount"`
	TotalItems int             `json:"totalItems"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// DefaultColor and DefaultIcon are used when the caller does not pick any.
const (
	DefaultColor = "#6b7280"
	DefaultIcon  = "folder"
)

// New creates a Folder with defaults applied.
func New(name string, now time.Time) *Folder {
	if name == "" {
		name = "Untitled Folder"
	}
	return &Folder{
		Base:       entity.NewBase(now),
		Name:       name,
		Color:      DefaultColor,
		Icon:       DefaultIcon,
		TotalValue: decimal.Zero,
	}
}

// Validate implements entity invariant checks.
func (f *Folder) Validate(ctx context.Context) error {
	if f.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Clone returns a deep copy of the folder.
func (f *Folder) Clone() *Folder {
	out := *f
	if f.Tags != nil {
		out.Tags = append([]string(nil), f.Tags...)
	}
	if f.DeletedAt != nil {
		del := *f.DeletedAt
		out.DeletedAt = &del
	}
	return &out
}

// Patch is a partial update for a Folder. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
	Tags        *[]string
}

// Apply merges the patch into the folder.
func (p Patch) Apply(f *Folder) {
	if p.Name != nil && *p.Name != "" {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Color != nil && *p.Color != "" {
		f.Color = *p.Color
	}
	if p.Icon != nil && *p.Icon != "" {
		f.Icon = *p.Icon
	}
	if p.Tags != nil {
		f.Tags = append([]string(nil), (*p.Tags)...)
	}
}
