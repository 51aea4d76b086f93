package handlers

import (
	"net/http"

	"fyp-portal/internal/database"
	"fyp-portal/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminReport is the allocation overview for administrators: every
// supervisor with their projects, and every student with the project
// they currently hold.
func AdminReport(c *gin.Context) {
	var supervisors []models.Supervisor
	database.DB.Order("last_name asc").Find(&supervisors)

	type supervisorRow struct {
		Supervisor models.Supervisor
		Projects   []models.Project
	}
	supervisorRows := make([]supervisorRow, 0, len(supervisors))
	for _, s := range supervisors {
		var projects []models.Project
		database.DB.Where("supervisor_id = ?", s.ID).Find(&projects)
		supervisorRows = append(supervisorRows, supervisorRow{Supervisor: s, Projects: projects})
	}

	var students []models.Student
	database.DB.Order("last_name asc").Find(&students)

	type studentRow struct {
		Student models.Student
		Project *models.Project
	}
	studentRows := make([]studentRow, 0, len(students))
	for _, s := range students {
		var project models.Project
		row := studentRow{Student: s}
		if err := database.DB.Where("proposed_by_id = ?", s.ID).First(&project).Error; err == nil {
			row.Project = &project
		}
		studentRows = append(studentRows, row)
	}

	render(c, http.StatusOK, "admin_report.html", gin.H{
		"supervisors": supervisorRows,
		"students":    studentRows,
	})
}
