package middleware

import (
	"github.com/citygarden/community-task-api/internal/constants"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// OptionalAuth copies the session user into the context when a session exists,
// without rejecting anonymous requests. Used to attribute task creation.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if userID := session.Get(constants.ContextKeyUserID); userID != nil {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	}
}
