package middleware

import (
	"net/http"

	"quizapp/internal/flash"
	"quizapp/internal/models"

	"github.com/gin-gonic/gin"
)

const loginPath = "/login"

func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole checks login first, so an anonymous client is always sent to
// the login page, never told it has the wrong role.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		if id.Role != role {
			flash.Add(c, flash.Error, "Access denied. "+role.Title()+" access required.")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
