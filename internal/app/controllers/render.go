package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deniz/careerhub/internal/middleware"
	"github.com/deniz/careerhub/internal/pkg/flash"
)

// render draws a template with the ambient page context (flash message,
// signed-in identity) merged into the handler's data.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if message, ok := flash.Pop(c); ok {
		data["Flash"] = message
	}

	if _, ok := middleware.CurrentUserID(c); ok {
		data["Username"] = middleware.CurrentUsername(c)
		data["Role"] = middleware.CurrentRole(c)
	}

	c.HTML(status, name, data)
}

// paramID parses the numeric path parameter shared by the detail and
// management routes.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
