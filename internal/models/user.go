package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin         UserRole = "Admin"
	RoleRecruiter     UserRole = "Recruiter"
	RoleHiringManager UserRole = "Hiring Manager"
)

// IsValidUserRole reports whether role is one of the roles a user may hold.
func IsValidUserRole(role string) bool {
	switch UserRole(role) {
	case RoleAdmin, RoleRecruiter, RoleHiringManager:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	Role         UserRole  `gorm:"type:varchar(50);not null" json:"role"`
	PasswordHash string    `gorm:"type:varchar(128)" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
