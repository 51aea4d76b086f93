package handlers

import (
	"net/http"
	"strconv"

	"fyp-portal/internal/database"
	"fyp-portal/internal/models"

	"github.com/gin-gonic/gin"
)

// Read-only JSON API. Each endpoint takes either a numeric id or the
// literal "all"; anything unparseable falls through to an empty array
// rather than an error.

func ProjectList(c *gin.Context) {
	param := c.Param("supervisorid")

	projects := []models.Project{}
	if param == "all" {
		database.DB.Find(&projects)
	} else if id, err := strconv.Atoi(param); err == nil {
		database.DB.Where("supervisor_id = ?", id).Find(&projects)
	}

	c.JSON(http.StatusOK, projects)
}

func SupervisorList(c *gin.Context) {
	param := c.Param("studentid")

	supervisors := []models.Supervisor{}
	if param == "all" {
		database.DB.Find(&supervisors)
	} else if id, err := strconv.Atoi(param); err == nil {
		// supervisors reached through the student's project
		database.DB.
			Joins("JOIN projects ON projects.supervisor_id = supervisors.id").
			Where("projects.proposed_by_id = ? AND projects.deleted_at IS NULL", id).
			Distinct().
			Find(&supervisors)
	}

	c.JSON(http.StatusOK, supervisors)
}

func StudentList(c *gin.Context) {
	param := c.Param("supervisorid")

	students := []models.Student{}
	if param == "all" {
		database.DB.Find(&students)
	} else if id, err := strconv.Atoi(param); err == nil {
		database.DB.
			Joins("JOIN projects ON projects.proposed_by_id = students.id").
			Where("projects.supervisor_id = ? AND projects.deleted_at IS NULL", id).
			Distinct().
			Find(&students)
	}

	c.JSON(http.StatusOK, students)
}
