package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleStudent    UserRole = "student"
	RoleSupervisor UserRole = "supervisor"
)

// User is the authentication identity. Role attributes live on the
// linked Student / Supervisor profile.
type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:150;not null" json:"username"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
}
