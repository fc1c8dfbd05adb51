// Package dto contains HTTP request and response shapes for API v1.
// Entities already carry their wire-format JSON tags, so responses use them
// directly; DTOs exist for request binding and validation.
package dto

import (
	"stokpano/internal/domain/folder"
	"stokpano/internal/domain/store"
)

// CreateFolderRequest is the request body for creating a folder.
type CreateFolderRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Icon        string   `json:"icon"`
	Tags        []string `json:"tags"`
}

// ToInput converts DTO to a store input.
func (r CreateFolderRequest) ToInput() store.CreateFolderInput {
	return store.CreateFolderInput{
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		Tags:        r.Tags,
	}
}

// UpdateFolderRequest is the request body for patching a folder.
type UpdateFolderRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"`
	Icon        *string   `json:"icon"`
	Tags        *[]string `json:"tags"`
}

// ToPatch converts DTO to a domain patch.
func (r UpdateFolderRequest) ToPatch() folder.Patch {
	return folder.Patch{
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		Tags:        r.Tags,
	}
}
