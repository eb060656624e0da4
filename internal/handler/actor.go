package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/middleware"
	"taskboard-api/internal/service"
)

// actorFromContext builds the acting identity for a mutation from the request.
// The user ID comes from the auth middleware; IP and user agent from the request
// itself. On unauthenticated routes the user ID is the nil UUID.
func actorFromContext(c *gin.Context) service.Actor {
	actor := service.Actor{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if value, exists := c.Get(middleware.ContextUserIDKey); exists {
		if userID, ok := value.(uuid.UUID); ok {
			actor.UserID = userID
		}
	}
	return actor
}
