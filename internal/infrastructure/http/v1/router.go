// Package v1 provides HTTP API version 1.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stokpano/internal/domain/store"
	"stokpano/internal/infrastructure/http/v1/handlers"
	"stokpano/internal/infrastructure/http/v1/middleware"
	"stokpano/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Store is the entity store every handler works against.
	Store *store.Store

	// Logger for request logging.
	Logger *logger.Logger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.Logger(cfg.Logger),
		middleware.ErrorHandler(),
		middleware.Actor(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	base := handlers.NewBaseHandler()
	api := router.Group("/api/v1")

	handlers.NewListHandler(base, cfg.Store).Register(api.Group("/lists"))
	handlers.NewFolderHandler(base, cfg.Store).Register(api.Group("/folders"))
	handlers.NewSystemHandler(base, cfg.Store).Register(api)

	return router
}
