// Package workflow is the only writer of Project.Status. Handlers
// resolve the acting student or supervisor from the session and pass
// it in explicitly; nothing in here reads ambient request state.
package workflow

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"fyp-portal/internal/apperrors"
	"fyp-portal/internal/models"

	"gorm.io/gorm"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// ProjectDraft is the validated subset of form input the engine works
// with. SupervisorID is only consulted on the student path, where the
// student picks the supervisor the proposal is aimed at.
type ProjectDraft struct {
	Title          string
	Description    string
	RequiredSkills string
	SupervisorID   *uint
}

func validateDraft(draft ProjectDraft, topicIDs []uint) *apperrors.ValidationError {
	ve := &apperrors.ValidationError{}
	if draft.Title == "" {
		ve.Add("title", "Title is required.")
	} else if utf8.RuneCountInString(draft.Title) > maxTitleLen {
		ve.Add("title", fmt.Sprintf("Title must be %d characters or fewer.", maxTitleLen))
	}
	if utf8.RuneCountInString(draft.Description) > maxDescriptionLen {
		ve.Add("description", fmt.Sprintf("Description must be %d characters or fewer.", maxDescriptionLen))
	}
	if len(topicIDs) == 0 {
		ve.Add("project_topics", "Select at least one project topic.")
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

func (e *Engine) loadTopics(tx *gorm.DB, topicIDs []uint) ([]*models.ProjectTopic, error) {
	var topics []*models.ProjectTopic
	if err := tx.Where("id IN ?", topicIDs).Find(&topics).Error; err != nil {
		return nil, err
	}
	if len(topics) != len(dedupe(topicIDs)) {
		ve := &apperrors.ValidationError{}
		return nil, ve.Add("project_topics", "One or more selected topics do not exist.")
	}
	return topics, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ProposeBySupervisor creates a proposal owned by the supervisor,
// open for students to request.
func (e *Engine) ProposeBySupervisor(sup *models.Supervisor, draft ProjectDraft, topicIDs []uint) (*models.Project, error) {
	if ve := validateDraft(draft, topicIDs); ve != nil {
		return nil, ve
	}

	supID := sup.ID
	project := &models.Project{
		Title:          draft.Title,
		Description:    draft.Description,
		RequiredSkills: draft.RequiredSkills,
		Status:         models.StatusProposed,
		SupervisorID:   &supID,
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		topics, err := e.loadTopics(tx, topicIDs)
		if err != nil {
			return err
		}
		project.Topics = topics
		return tx.Create(project).Error
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ProposeByStudent creates a self-authored project aimed at a chosen
// supervisor. A student may hold at most one active proposal.
func (e *Engine) ProposeByStudent(st *models.Student, draft ProjectDraft, topicIDs []uint) (*models.Project, error) {
	existing, err := e.ExistingProposal(st)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("student already has an active project: %s", existing.Title)
	}

	if ve := validateDraft(draft, topicIDs); ve != nil {
		return nil, ve
	}
	if draft.SupervisorID == nil {
		ve := &apperrors.ValidationError{}
		return nil, ve.Add("supervisor", "Select a supervisor.")
	}

	var supervisor models.Supervisor
	if err := e.db.First(&supervisor, *draft.SupervisorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("supervisor %d not found", *draft.SupervisorID)
		}
		return nil, err
	}

	username, err := e.usernameFor(st.UserID)
	if err != nil {
		return nil, err
	}

	stID := st.ID
	project := &models.Project{
		Title:          draft.Title,
		Description:    draft.Description,
		RequiredSkills: draft.RequiredSkills,
		Status:         models.StatusRequested,
		ProposedByID:   &stID,
		SupervisorID:   &supervisor.ID,
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		topics, err := e.loadTopics(tx, topicIDs)
		if err != nil {
			return err
		}
		project.Topics = topics
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return notify(tx, supervisor.UserID,
			fmt.Sprintf("New project proposed by %s: %s", username, project.Title))
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// RequestExistingProject claims a proposed project for the student.
// The claim is a conditional update so two students racing for the
// same project cannot silently overwrite each other; the loser gets a
// conflict instead.
func (e *Engine) RequestExistingProject(st *models.Student, projectID uint) (*models.Project, error) {
	var project models.Project
	if err := e.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("project %d not found", projectID)
		}
		return nil, err
	}

	username, err := e.usernameFor(st.UserID)
	if err != nil {
		return nil, err
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).
			Where("id = ? AND (proposed_by_id IS NULL OR proposed_by_id = ?)", projectID, st.ID).
			Updates(map[string]interface{}{
				"status":         models.StatusRequested,
				"proposed_by_id": st.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NewConflict("project %q has already been requested by another student", project.Title)
		}

		if project.SupervisorID != nil {
			var supervisor models.Supervisor
			if err := tx.First(&supervisor, *project.SupervisorID).Error; err != nil {
				return err
			}
			if err := notify(tx, supervisor.UserID,
				fmt.Sprintf("Project requested by %s: %s", username, project.Title)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := e.db.Preload("Topics").First(&project, projectID).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// AcceptProject marks a requested project as accepted. Re-accepting an
// already accepted project is a no-op.
// TODO: require actor to match the project's supervisor once product
// decides whether cross-supervisor acceptance is allowed.
func (e *Engine) AcceptProject(actor *models.Supervisor, projectID uint) (*models.Project, error) {
	var project models.Project
	if err := e.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("project %d not found", projectID)
		}
		return nil, err
	}

	if project.Status == models.StatusAccepted {
		return &project, nil
	}

	project.Status = models.StatusAccepted
	if err := e.db.Save(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// RejectProject removes the project permanently. Rejection is not a
// status transition: the row and its topic links are gone afterwards.
func (e *Engine) RejectProject(actor *models.Supervisor, projectID uint) error {
	var project models.Project
	if err := e.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("project %d not found", projectID)
		}
		return err
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&project).Association("Topics").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&project).Error
	})
}

// ListAccepted returns the supervisor's accepted projects.
func (e *Engine) ListAccepted(sup *models.Supervisor) ([]models.Project, error) {
	var projects []models.Project
	err := e.db.
		Where("supervisor_id = ? AND status = ?", sup.ID, models.StatusAccepted).
		Preload("ProposedBy").
		Find(&projects).Error
	return projects, err
}

// ListProposed returns supervisor proposals open for request, each
// with its topics.
func (e *Engine) ListProposed() ([]models.Project, error) {
	var projects []models.Project
	err := e.db.
		Where("status = ?", models.StatusProposed).
		Preload("Topics").
		Preload("Supervisor").
		Find(&projects).Error
	return projects, err
}

// ListRequested returns the projects awaiting an accept / reject
// decision.
func (e *Engine) ListRequested() ([]models.Project, error) {
	var projects []models.Project
	err := e.db.
		Where("status = ?", models.StatusRequested).
		Preload("ProposedBy").
		Preload("Supervisor").
		Find(&projects).Error
	return projects, err
}

// ExistingProposal returns the project the student currently proposes
// or requests, or nil when the student has none.
func (e *Engine) ExistingProposal(st *models.Student) (*models.Project, error) {
	var project models.Project
	err := e.db.
		Where("proposed_by_id = ?", st.ID).
		Preload("Topics").
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject looks a project up by id.
func (e *Engine) GetProject(projectID uint) (*models.Project, error) {
	var project models.Project
	err := e.db.Preload("Topics").First(&project, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("project %d not found", projectID)
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (e *Engine) usernameFor(userID uint) (string, error) {
	var user models.User
	if err := e.db.First(&user, userID).Error; err != nil {
		return "", err
	}
	return user.Username, nil
}
