package workflow

import (
	"fmt"
	"unicode/utf8"

	"fyp-portal/internal/apperrors"
	"fyp-portal/internal/models"
)

const (
	maxTopicTitleLen       = 100
	maxTopicDescriptionLen = 1000
)

// CreateTopic registers a reusable topic tag. Topics are created by
// supervisors but not owned by them.
func (e *Engine) CreateTopic(title, description string) (*models.ProjectTopic, error) {
	ve := &apperrors.ValidationError{}
	if title == "" {
		ve.Add("title", "Title is required.")
	} else if utf8.RuneCountInString(title) > maxTopicTitleLen {
		ve.Add("title", fmt.Sprintf("Title must be %d characters or fewer.", maxTopicTitleLen))
	}
	if utf8.RuneCountInString(description) > maxTopicDescriptionLen {
		ve.Add("description", fmt.Sprintf("Description must be %d characters or fewer.", maxTopicDescriptionLen))
	}
	if len(ve.Fields) > 0 {
		return nil, ve
	}

	topic := &models.ProjectTopic{Title: title, Description: description}
	if err := e.db.Create(topic).Error; err != nil {
		return nil, err
	}
	return topic, nil
}

// ListTopics returns every topic, for the proposal forms.
func (e *Engine) ListTopics() ([]models.ProjectTopic, error) {
	var topics []models.ProjectTopic
	err := e.db.Order("title asc").Find(&topics).Error
	return topics, err
}
