package models

import "gorm.io/gorm"

// Student and Supervisor are the two person roles. Each is linked 1:1
// to a User; email and sussex id are unique within their table.

type Student struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `json:"-"`

	FirstName string `gorm:"size:30;not null" json:"first_name"`
	LastName  string `gorm:"size:30;not null" json:"last_name"`
	Email     string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	SussexID  string `gorm:"size:20;uniqueIndex;not null" json:"sussex_id"`
	Course    string `gorm:"size:100" json:"course"`
}

type Supervisor struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `json:"-"`

	FirstName       string `gorm:"size:30;not null" json:"first_name"`
	LastName        string `gorm:"size:30;not null" json:"last_name"`
	Email           string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	SussexID        string `gorm:"size:20;uniqueIndex;not null" json:"sussex_id"`
	Department      string `gorm:"size:100" json:"department"`
	TelephoneNumber string `gorm:"size:15" json:"telephone_number"`
}
