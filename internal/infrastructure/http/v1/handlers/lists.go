package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stokpano/internal/core/apperror"
	"stokpano/internal/domain/list"
	"stokpano/internal/domain/store"
	"stokpano/internal/infrastructure/http/v1/dto"
)

// ListHandler serves purchase-list endpoints.
type ListHandler struct {
	*BaseHandler
	store *store.Store
}

// NewListHandler creates a list handler.
func NewListHandler(base *BaseHandler, s *store.Store) *ListHandler {
	return &ListHandler{BaseHandler: base, store: s}
}

// Register wires the routes.
func (h *ListHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/archived", h.ListArchived)
	rg.POST("", h.Create)
	rg.POST("/merge", h.Merge)
	rg.POST("/bulk-update", h.BulkUpdate)
	rg.POST("/bulk-delete", h.BulkDelete)
	rg.GET("/export", h.Export)
	rg.POST("/import", h.Import)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/restore", h.Restore)
	rg.POST("/:id/duplicate", h.Duplicate)
	rg.POST("/:id/items", h.AddItems)
	rg.POST("/:id/items/move", h.MoveItems)
	rg.PATCH("/:id/items/:itemId", h.UpdateItem)
	rg.DELETE("/:id/items/:itemId", h.RemoveItem)
}

// List returns the active lists.
func (h *ListHandler) List(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		c.JSON(http.StatusOK, h.store.ListsByStatus(list.Status(status)))
		return
	}
	c.JSON(http.StatusOK, h.store.Lists())
}

// ListArchived returns the soft-deleted lists.
func (h *ListHandler) ListArchived(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ArchivedLists())
}

// Get returns one active list.
func (h *ListHandler) Get(c *gin.Context) {
	listID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	l, found := h.store.GetListByID(listID)
	if !found {
		h.Error(c, apperror.NewNotFound("list", listID.String()))
		return
	}
	c.JSON(http.StatusOK, l)
}

// Create appends a new active list.
func (h *ListHandler) Create(c *gin.Context) {
	var req dto.CreateListRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}
	l := h.store.CreateList(c.Request.Context(), in)
	c.JSON(http.StatusCreated, l)
}

// Update patches an active list. Unknown ids are a no-op by store contract;
// the handler reports 204 either way.
func (h *ListHandler) Update(c *gin.Context) {
	listID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateListRequest
	if !h.BindJSON(c, &req) {
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		h.Error(c, err)
		return
	}
	h.store.UpdateList(c.Request.Context(), listID, patch)
	c.Status(http.StatusNoContent)
}

// Delete archives a list; ?permanent=true erases it from the archive.
func (h *ListHandler) Delete(c *gin.Context) {
	listID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	h.store.DeleteList(c.Request.Context(), listID, h.BoolQuery(c, "permanent", false))
	c.Status(http.StatusNoContent)
}

// Restore moves a list out of the archive.
func (h *ListHandler) Restore(c *gin.Context) {
	listID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	h.store.RestoreList(c.Request.Context(), listID)
	c.Status(http.StatusNoContent)
}

// Duplicate clones an active list.
func (h *ListHandler) Duplicate(c *gin.Context) {
	listID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	dup, err := h.store.DuplicateList(c.Request.Context(), listID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dup)
}

// Merge folds source lists into the target.
func (h *ListHandler) Merge(c *gin.Context) {
	var req dto.MergeListsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sourceIDs, err := dto.ParseIDs(req.SourceIDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	targetID, err := dto.ParseIDs([]string{req.TargetID})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.store.MergeLists(c.Request.Context(), sourceIDs, targetID[0])
	c.Status(http.StatusNoContent)
}

// BulkUpdate patches many lists at once.
func (h *ListHandler) BulkUpdate(c *gin.Context) {
	var req dto.BulkUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	ids, err := dto.ParseIDs(req.IDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	patch, err := req.Patch.ToPatch()
	if err != nil {
		h.Error(c, err)
		return
	}
	h.store.BulkUpdateLists(c.Request.Context(), ids, patch)
	c.Status(http.StatusNoContent)
}

// BulkDelete archives many lists at once.
func (h *ListHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if !h.BindJSON(c, &req) {
		return
	}
	ids, err := dto.ParseIDs(req.IDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.store.BulkDeleteLists(c.Request.Context(), ids)
	c.Status(http.StatusNoContent)
}

// AddItems appends lines to a list.
func (h *ListHandler) AddItems(c *gin.Context) {
	listID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.AddItemsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	items := h.store.AddItemsToList(c.Request.Context(), listID, toItemInputs(req.Items))
	c.JSON(http.StatusOK, items)
}

// UpdateItem patches one line.
func (h *ListHandler) UpdateItem(c *gin.Context) {
	listID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParamID(c, "itemId")
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.store.UpdateListItem(c.Request.Context(), listID, itemID, req.ToPatch())
	c.Status(http.StatusNoContent)
}

// RemoveItem deletes one line.
func (h *ListHandler) RemoveItem(c *gin.Context) {
	listID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParamID(c, "itemId")
	if !ok {
		return
	}
	h.store.RemoveItemFromList(c.Request.Context(), listID, itemID)
	c.Status(http.StatusNoContent)
}

// MoveItems splices lines from this list into the target.
func (h *ListHandler) MoveItems(c *gin.Context) {
	sourceID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.MoveItemsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	targetIDs, err := dto.ParseIDs([]string{req.TargetID})
	if err != nil {
		h.Error(c, err)
		return
	}
	itemIDs, err := dto.ParseIDs(req.ItemIDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.store.MoveItems(c.Request.Context(), sourceID, targetIDs[0], itemIDs)
	c.Status(http.StatusNoContent)
}

// Export streams a JSON (or zstd) snapshot of the addressed lists.
func (h *ListHandler) Export(c *gin.Context) {
	var ids []string
	if raw := c.Query("ids"); raw != "" {
		ids = strings.Split(raw, ",")
	}
	listIDs, err := dto.ParseIDs(ids)
	if err != nil {
		h.Error(c, err)
		return
	}
	compress := h.BoolQuery(c, "compress", false)
	data, err := h.store.ExportLists(c.Request.Context(), listIDs, store.ExportOptions{Compress: compress})
	if err != nil {
		h.Error(c, err)
		return
	}
	if compress {
		c.Header("Content-Disposition", `attachment; filename="lists.json.zst"`)
		c.Data(http.StatusOK, "application/zstd", data)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func toItemInputs(reqs []dto.ItemRequest) []list.ItemInput {
	inputs := make([]list.ItemInput, 0, len(reqs))
	for _, r := range reqs {
		inputs = append(inputs, r.ToInput())
	}
	return inputs
}

// Import appends lists from a previously exported payload.
func (h *ListHandler) Import(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		h.Error(c, apperror.NewValidation("cannot read request body").WithCause(err))
		return
	}
	imported, err := h.store.ImportLists(c.Request.Context(), data)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, imported)
}
