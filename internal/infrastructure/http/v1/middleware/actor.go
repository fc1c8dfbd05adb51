package middleware

import (
	"github.com/gin-gonic/gin"

	"stokpano/internal/domain/store"
)

// ActorHeader names the request header carrying the acting user's label.
const ActorHeader = "X-User"

// Actor records who is calling, so soft deletes can stamp deletedBy.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if name := c.GetHeader(ActorHeader); name != "" {
			c.Request = c.Request.WithContext(store.WithActor(c.Request.Context(), name))
		}
		c.Next()
	}
}
