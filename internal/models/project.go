package models

import "gorm.io/gorm"

type ProjectStatus string

const (
	StatusAvailable ProjectStatus = "Available"
	StatusProposed  ProjectStatus = "Proposed"
	StatusRequested ProjectStatus = "Requested"
	StatusAccepted  ProjectStatus = "Accepted"
	// Confirmed is declared in the status set but no transition produces
	// it yet; kept so stored values stay forward-compatible.
	StatusConfirmed ProjectStatus = "Confirmed"
)

type Project struct {
	gorm.Model
	Title          string        `gorm:"size:200;not null" json:"title"`
	Description    string        `gorm:"type:text" json:"description"`
	RequiredSkills string        `gorm:"size:200" json:"required_skills"`
	Status         ProjectStatus `gorm:"type:varchar(10);not null" json:"status"`

	ProposedByID *uint    `json:"proposed_by_id"`
	ProposedBy   *Student `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	SupervisorID *uint       `json:"supervisor_id"`
	Supervisor   *Supervisor `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	Topics []*ProjectTopic `gorm:"many2many:project_topic_links" json:"topics,omitempty"`
}

// ProjectTopic is a reusable thematic tag; a topic may tag many
// projects and a project may carry many topics.
type ProjectTopic struct {
	gorm.Model
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Projects    []*Project `gorm:"many2many:project_topic_links" json:"-"`
}
