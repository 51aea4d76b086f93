package handlers

import (
	"fyp-portal/internal/models"
	"fyp-portal/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var engine *workflow.Engine

// Setup wires the handler package to the database. Called once from
// the router; tests call it with an in-memory database.
func Setup(db *gorm.DB) {
	engine = workflow.NewEngine(db)
}

func currentUser(c *gin.Context) (models.User, bool) {
	if v, ok := c.Get("CurrentUser"); ok {
		if u, ok := v.(models.User); ok {
			return u, true
		}
	}
	return models.User{}, false
}
