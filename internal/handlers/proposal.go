package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fyp-portal/internal/apperrors"
	"fyp-portal/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type proposalForm struct {
	Title          string `form:"title"`
	Description    string `form:"description"`
	RequiredSkills string `form:"required_skills"`
	SupervisorID   string `form:"supervisor"`
}

func (f proposalForm) draft() workflow.ProjectDraft {
	draft := workflow.ProjectDraft{
		Title:          strings.TrimSpace(f.Title),
		Description:    strings.TrimSpace(f.Description),
		RequiredSkills: strings.TrimSpace(f.RequiredSkills),
	}
	if id, err := strconv.Atoi(f.SupervisorID); err == nil && id > 0 {
		sid := uint(id)
		draft.SupervisorID = &sid
	}
	return draft
}

func topicIDsFromForm(c *gin.Context) []uint {
	var ids []uint
	for _, raw := range c.PostFormArray("project_topics") {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

//
// SUPERVISOR PROPOSALS
//

func ShowRegisterProposal(c *gin.Context) {
	topics, _ := engine.ListTopics()
	render(c, http.StatusOK, "register_proposal.html", gin.H{
		"topics": topics,
		"errors": gin.H{},
	})
}

func RegisterProposal(c *gin.Context) {
	user, _ := currentUser(c)
	supervisor, err := engine.SupervisorForUser(user.ID)
	if err != nil {
		c.Redirect(http.StatusFound, "/unauthorised")
		return
	}

	var form proposalForm
	if err := c.ShouldBind(&form); err != nil {
		renderProposalForm(c, "register_proposal.html", gin.H{"form": "Invalid form data."}, form)
		return
	}

	_, err = engine.ProposeBySupervisor(supervisor, form.draft(), topicIDsFromForm(c))
	if err != nil {
		if ve, ok := apperrors.AsValidation(err); ok {
			renderProposalForm(c, "register_proposal.html", ve.Messages(), form)
			return
		}
		log.Error().Err(err).Msg("failed to create proposal")
		renderProposalForm(c, "register_proposal.html", gin.H{"form": "Could not save the proposal."}, form)
		return
	}

	c.Redirect(http.StatusFound, "/supervisor_home")
}

//
// STUDENT PROPOSALS
//

func ShowProposeProject(c *gin.Context) {
	user, _ := currentUser(c)
	student, err := engine.StudentForUser(user.ID)
	if err != nil {
		c.Redirect(http.StatusFound, "/unauthorised")
		return
	}

	// a student with an active proposal sees it instead of the form
	existing, err := engine.ExistingProposal(student)
	if err != nil {
		c.String(http.StatusInternalServerError, "Could not load your proposal")
		return
	}
	if existing != nil {
		render(c, http.StatusOK, "proposed_project_detail.html", gin.H{"project": existing})
		return
	}

	topics, _ := engine.ListTopics()
	supervisors, _ := engine.ListSupervisors()
	render(c, http.StatusOK, "propose_project.html", gin.H{
		"topics":      topics,
		"supervisors": supervisors,
		"errors":      gin.H{},
	})
}

func ProposeProject(c *gin.Context) {
	user, _ := currentUser(c)
	student, err := engine.StudentForUser(user.ID)
	if err != nil {
		c.Redirect(http.StatusFound, "/unauthorised")
		return
	}

	var form proposalForm
	if err := c.ShouldBind(&form); err != nil {
		renderProposalForm(c, "propose_project.html", gin.H{"form": "Invalid form data."}, form)
		return
	}

	_, err = engine.ProposeByStudent(student, form.draft(), topicIDsFromForm(c))
	if err != nil {
		if ve, ok := apperrors.AsValidation(err); ok {
			renderProposalForm(c, "propose_project.html", ve.Messages(), form)
			return
		}
		if errors.Is(err, apperrors.ErrConflict) {
			existing, lookupErr := engine.ExistingProposal(student)
			if lookupErr == nil && existing != nil {
				render(c, http.StatusConflict, "proposed_project_detail.html", gin.H{"project": existing})
				return
			}
		}
		log.Error().Err(err).Msg("failed to create student proposal")
		renderProposalForm(c, "propose_project.html", gin.H{"form": "Could not save the proposal."}, form)
		return
	}

	c.Redirect(http.StatusFound, "/student_home")
}

func renderProposalForm(c *gin.Context, tmpl string, errs interface{}, form proposalForm) {
	topics, _ := engine.ListTopics()
	supervisors, _ := engine.ListSupervisors()
	render(c, http.StatusBadRequest, tmpl, gin.H{
		"errors":      errs,
		"form":        form,
		"topics":      topics,
		"supervisors": supervisors,
	})
}

//
// BROWSING AND REQUESTING
//

func ProposedProjects(c *gin.Context) {
	user, _ := currentUser(c)
	student, err := engine.StudentForUser(user.ID)
	if err != nil {
		c.Redirect(http.StatusFound, "/unauthorised")
		return
	}

	projects, err := engine.ListProposed()
	if err != nil {
		c.String(http.StatusInternalServerError, "Could not load proposed projects")
		return
	}

	existing, _ := engine.ExistingProposal(student)

	render(c, http.StatusOK, "proposed_projects.html", gin.H{
		"projects":        projects,
		"existingProject": existing,
		"error":           "",
	})
}

func RequestProject(c *gin.Context) {
	user, _ := currentUser(c)
	student, err := engine.StudentForUser(user.ID)
	if err != nil {
		c.Redirect(http.StatusFound, "/unauthorised")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Invalid project id")
		return
	}

	_, err = engine.RequestExistingProject(student, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.String(http.StatusNotFound, "Project not found")
		case errors.Is(err, apperrors.ErrConflict):
			projects, _ := engine.ListProposed()
			existing, _ := engine.ExistingProposal(student)
			render(c, http.StatusConflict, "proposed_projects.html", gin.H{
				"projects":        projects,
				"existingProject": existing,
				"error":           err.Error(),
			})
		default:
			log.Error().Err(err).Int("project_id", id).Msg("failed to request project")
			c.String(http.StatusInternalServerError, "Could not request the project")
		}
		return
	}

	c.Redirect(http.StatusFound, "/proposed-projects")
}

//
// ACCEPT / REJECT
//

func ManageProposals(c *gin.Context) {
	projects, err := engine.ListRequested()
	if err != nil {
		c.String(http.StatusInternalServerError, "Could not load requested projects")
		return
	}
	render(c, http.StatusOK, "manage_proposals.html", gin.H{
		"projects": projects,
	})
}

func ManageProposalsAction(c *gin.Context) {
	user, _ := currentUser(c)
	supervisor, err := engine.SupervisorForUser(user.ID)
	if err != nil {
		c.Redirect(http.StatusFound, "/unauthorised")
		return
	}

	id, err := strconv.Atoi(c.PostForm("project_id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Invalid project id")
		return
	}
	projectID := uint(id)

	switch {
	case c.PostForm("accept_project") != "":
		if _, err := engine.AcceptProject(supervisor, projectID); err != nil {
			manageProposalsError(c, err, projectID)
			return
		}
	case c.PostForm("reject_project") != "":
		if err := engine.RejectProject(supervisor, projectID); err != nil {
			manageProposalsError(c, err, projectID)
			return
		}
	default:
		c.String(http.StatusBadRequest, "No action selected")
		return
	}

	c.Redirect(http.StatusFound, "/manage-proposals")
}

func manageProposalsError(c *gin.Context, err error, projectID uint) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.String(http.StatusNotFound, "Project not found")
		return
	}
	log.Error().Err(err).Uint("project_id", projectID).Msg("manage proposals action failed")
	c.String(http.StatusInternalServerError, "Could not update the project")
}

func AcceptedProjects(c *gin.Context) {
	user, _ := currentUser(c)
	supervisor, err := engine.SupervisorForUser(user.ID)
	if err != nil {
		c.Redirect(http.StatusFound, "/unauthorised")
		return
	}

	projects, err := engine.ListAccepted(supervisor)
	if err != nil {
		c.String(http.StatusInternalServerError, "Could not load accepted projects")
		return
	}

	render(c, http.StatusOK, "accepted_projects.html", gin.H{
		"projects": projects,
	})
}
