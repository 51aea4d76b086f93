package workflow

import (
	"errors"

	"fyp-portal/internal/apperrors"
	"fyp-portal/internal/models"

	"gorm.io/gorm"
)

// StudentForUser resolves the student profile linked to an auth
// identity. A missing profile means the user has no student role.
func (e *Engine) StudentForUser(userID uint) (*models.Student, error) {
	var student models.Student
	err := e.db.Where("user_id = ?", userID).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewUnauthorized("no student profile for user %d", userID)
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// SupervisorForUser resolves the supervisor profile linked to an auth
// identity.
func (e *Engine) SupervisorForUser(userID uint) (*models.Supervisor, error) {
	var supervisor models.Supervisor
	err := e.db.Where("user_id = ?", userID).First(&supervisor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewUnauthorized("no supervisor profile for user %d", userID)
	}
	if err != nil {
		return nil, err
	}
	return &supervisor, nil
}

// ListSupervisors returns all supervisors, for the student proposal
// form's supervisor picker.
func (e *Engine) ListSupervisors() ([]models.Supervisor, error) {
	var supervisors []models.Supervisor
	err := e.db.Order("last_name asc").Find(&supervisors).Error
	return supervisors, err
}
