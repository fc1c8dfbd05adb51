package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stokpano/internal/core/apperror"
	"stokpano/internal/domain/store"
	"stokpano/internal/infrastructure/http/v1/dto"
)

// FolderHandler serves folder endpoints.
type FolderHandler struct {
	*BaseHandler
	store *store.Store
}

// NewFolderHandler creates a folder handler.
func NewFolderHandler(base *BaseHandler, s *store.Store) *FolderHandler {
	return &FolderHandler{BaseHandler: base, store: s}
}

// Register wires the routes.
func (h *FolderHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/archived", h.ListArchived)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/lists", h.Lists)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/restore", h.Restore)
}

// List returns the active folders.
func (h *FolderHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Folders())
}

// ListArchived returns the soft-deleted folders.
func (h *FolderHandler) ListArchived(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ArchivedFolders())
}

// Get returns one active folder.
func (h *FolderHandler) Get(c *gin.Context) {
	folderID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	f, found := h.store.GetFolderByID(folderID)
	if !found {
		h.Error(c, apperror.NewNotFound("folder", folderID.String()))
		return
	}
	c.JSON(http.StatusOK, f)
}

// Lists returns the active lists filed under the folder.
func (h *FolderHandler) Lists(c *gin.Context) {
	folderID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.ListsInFolder(folderID))
}

// Create appends a new active folder.
func (h *FolderHandler) Create(c *gin.Context) {
	var req dto.CreateFolderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	f := h.store.CreateFolder(c.Request.Context(), req.ToInput())
	c.JSON(http.StatusCreated, f)
}

// Update patches an active folder.
func (h *FolderHandler) Update(c *gin.Context) {
	folderID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateFolderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.store.UpdateFolder(c.Request.Context(), folderID, req.ToPatch())
	c.Status(http.StatusNoContent)
}

// Delete archives a folder (unfiling its lists); ?permanent=true erases it.
func (h *FolderHandler) Delete(c *gin.Context) {
	folderID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	h.store.DeleteFolder(c.Request.Context(), folderID, h.BoolQuery(c, "permanent", false))
	c.Status(http.StatusNoContent)
}

// Restore moves a folder out of the archive.
func (h *FolderHandler) Restore(c *gin.Context) {
	folderID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	h.store.RestoreFolder(c.Request.Context(), folderID)
	c.Status(http.StatusNoContent)
}
