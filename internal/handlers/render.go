package handlers

import (
	"github.com/gin-gonic/gin"
)

// render wraps c.HTML so every template sees the current user.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u, ok := currentUser(c); ok {
		data["CurrentUser"] = u
		data["CurrentUsername"] = u.Username
		data["CurrentUserRole"] = u.Role
	}

	c.HTML(status, tmpl, data)
}
