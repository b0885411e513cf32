package handlers

import (
	"quizapp/internal/flash"
	"quizapp/internal/middleware"

	"github.com/gin-gonic/gin"
)

const genericError = "Something went wrong, please try again"

// render wraps c.HTML and passes the current user and pending flashes to
// every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = u
	}
	data["Flashes"] = flash.Pop(c)

	c.HTML(status, tmpl, data)
}
