package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stokpano/internal/core/apperror"
	"stokpano/internal/domain/store"
)

// SystemHandler serves statistics, notifications and the data-reset flow.
type SystemHandler struct {
	*BaseHandler
	store *store.Store
}

// NewSystemHandler creates a system handler.
func NewSystemHandler(base *BaseHandler, s *store.Store) *SystemHandler {
	return &SystemHandler{BaseHandler: base, store: s}
}

// Register wires the routes.
func (h *SystemHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/statistics", h.Statistics)
	rg.GET("/notifications", h.Notifications)
	rg.DELETE("/data", h.Wipe)
}

// Statistics returns the derived global statistics.
func (h *SystemHandler) Statistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Statistics())
}

// Notifications returns the most recent notification intents, newest first.
func (h *SystemHandler) Notifications(c *gin.Context) {
	limit := h.IntQuery(c, "limit", 20)
	c.JSON(http.StatusOK, h.store.Notifications().Recent(limit))
}

// Wipe clears all collections and erases both persistence backends.
// Guarded by a confirmation query parameter; this is a reset flow.
func (h *SystemHandler) Wipe(c *gin.Context) {
	if c.Query("confirm") != "true" {
		h.Error(c, apperror.NewValidation("confirm=true is required to wipe all data"))
		return
	}
	if err := h.store.Wipe(c.Request.Context()); err != nil {
		h.Error(c, apperror.NewPersistence("wipe", err))
		return
	}
	c.Status(http.StatusNoContent)
}
