package handlers

import (
	"net/http"
	"strings"

	"fyp-portal/internal/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func ShowRegisterTopic(c *gin.Context) {
	render(c, http.StatusOK, "register_topic.html", gin.H{"errors": gin.H{}})
}

type topicForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

func RegisterTopic(c *gin.Context) {
	var form topicForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register_topic.html", gin.H{
			"errors": gin.H{"form": "Invalid form data."},
		})
		return
	}

	_, err := engine.CreateTopic(strings.TrimSpace(form.Title), strings.TrimSpace(form.Description))
	if err != nil {
		if ve, ok := apperrors.AsValidation(err); ok {
			render(c, http.StatusBadRequest, "register_topic.html", gin.H{
				"errors": ve.Messages(),
				"form":   form,
			})
			return
		}
		log.Error().Err(err).Msg("failed to create topic")
		render(c, http.StatusInternalServerError, "register_topic.html", gin.H{
			"errors": gin.H{"form": "Could not save the topic."},
			"form":   form,
		})
		return
	}

	c.Redirect(http.StatusFound, "/supervisor_home")
}
