// Package entity contains the shared base type for store entities.
package entity

import (
	"time"

	"stokpano/internal/core/id"
)

// Base contains common fields for all stored entities (lists, folders).
// Soft delete is modeled with an explicit flag plus audit fields; the flag
// decides which in-memory collection (active or archived) an entity lives in.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// IsDeleted marks the entity as archived (soft-deleted)
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	DeletedBy string     `json:"deletedBy,omitempty"`
}

// NewBase creates a Base with generated ID and the given creation time.
func NewBase(now time.Time) Base {
	return Base{
		ID:        id.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes the UpdatedAt timestamp. UpdatedAt never moves backwards.
func (b *Base) Touch(now time.Time) {
	if now.After(b.UpdatedAt) {
		b.UpdatedAt = now
	}
}

// MarkDeleted stamps the soft-delete fields.
func (b *Base) MarkDeleted(now time.Time, by string) {
	b.IsDeleted = true
	b.DeletedAt = &now
	b.DeletedBy = by
	b.Touch(now)
}

// Restore clears the soft-delete fields.
func (b *Base) Restore(now time.Time) {
	b.IsDeleted = false
	b.DeletedAt = nil
	b.DeletedBy = ""
	b.Touch(now)
}
