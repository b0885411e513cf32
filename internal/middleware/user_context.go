package middleware

import (
	"time"

	"quizapp/internal/auth"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const currentUserKey = "CurrentUser"

// InjectUser puts the session identity, if any, into the gin context so
// guards and templates read it without touching the session again.
// Sessions older than maxAge are dropped here.
func InjectUser(maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := auth.CurrentSession(sessions.Default(c), maxAge); ok {
			c.Set(currentUserKey, id)
		}
		c.Next()
	}
}

// CurrentUser reports the identity InjectUser found. Without InjectUser in
// the chain every request is anonymous.
func CurrentUser(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
