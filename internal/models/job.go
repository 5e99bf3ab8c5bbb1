package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusOpen   JobStatus = "Open"
	JobStatusClosed JobStatus = "Closed"
)

func IsValidJobStatus(status string) bool {
	switch JobStatus(status) {
	case JobStatusOpen, JobStatusClosed:
		return true
	}
	return false
}

type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Department  string    `gorm:"type:varchar(50);not null" json:"department"`
	Location    *string   `gorm:"type:varchar(100)" json:"location,omitempty"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Status      JobStatus `gorm:"type:varchar(50);not null;default:'Open'" json:"status"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;index" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Creator User `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}
