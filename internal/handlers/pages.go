package handlers

import (
	"net/http"

	"fyp-portal/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Home routes the logged-in user to the page matching their role.
func Home(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	switch user.Role {
	case models.RoleStudent:
		c.Redirect(http.StatusFound, "/student_home")
	case models.RoleSupervisor:
		c.Redirect(http.StatusFound, "/supervisor_home")
	case models.RoleAdmin:
		c.Redirect(http.StatusFound, "/admin/report")
	default:
		render(c, http.StatusOK, "home.html", nil)
	}
}

func StudentHome(c *gin.Context) {
	user, _ := currentUser(c)
	if _, err := engine.StudentForUser(user.ID); err != nil {
		c.Redirect(http.StatusFound, "/unauthorised")
		return
	}
	render(c, http.StatusOK, "student_home.html", nil)
}

func SupervisorHome(c *gin.Context) {
	user, _ := currentUser(c)
	if _, err := engine.SupervisorForUser(user.ID); err != nil {
		c.Redirect(http.StatusFound, "/unauthorised")
		return
	}

	notifications, err := engine.UnreadFor(user.ID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("failed to load notifications")
	}

	render(c, http.StatusOK, "supervisor_home.html", gin.H{
		"notifications": notifications,
	})
}

func Unauthorised(c *gin.Context) {
	render(c, http.StatusOK, "unauthorised.html", nil)
}
