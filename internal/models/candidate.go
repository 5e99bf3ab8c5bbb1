package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CandidateStatus string

const (
	CandidateApplied   CandidateStatus = "Applied"
	CandidateScreening CandidateStatus = "Screening"
	CandidateInterview CandidateStatus = "Interview"
	CandidateOffer     CandidateStatus = "Offer"
	CandidateHired     CandidateStatus = "Hired"
	CandidateRejected  CandidateStatus = "Rejected"
)

// IsHired is case-insensitive since lenient mode stores whatever the client sent.
func (s CandidateStatus) IsHired() bool {
	return strings.EqualFold(string(s), string(CandidateHired))
}

type ResumeIndexStatus string

const (
	ResumeIndexNone       ResumeIndexStatus = ""
	ResumeIndexQueued     ResumeIndexStatus = "queued"
	ResumeIndexProcessing ResumeIndexStatus = "processing"
	ResumeIndexIndexed    ResumeIndexStatus = "indexed"
	ResumeIndexFailed     ResumeIndexStatus = "failed"
)

type Candidate struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string            `gorm:"type:varchar(100);not null" json:"name"`
	Email             string            `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	Phone             string            `gorm:"type:varchar(20);not null" json:"phone"`
	PositionApplied   uuid.UUID         `gorm:"type:uuid;index" json:"position_applied"`
	Resume            string            `gorm:"type:varchar(200)" json:"resume"`
	Status            CandidateStatus   `gorm:"type:varchar(50);default:'Applied'" json:"status"`
	InterviewScore    int               `gorm:"default:0" json:"interview_score"`
	Notes             Notes             `gorm:"type:jsonb" json:"notes"`
	DateApplied       time.Time         `gorm:"not null" json:"date_applied"`
	DateHired         *time.Time        `json:"date_hired,omitempty"`
	ResumeText        string            `gorm:"type:text" json:"-"`
	ResumeIndexStatus ResumeIndexStatus `gorm:"type:varchar(20);index" json:"resume_index_status,omitempty"`
	ResumeIndexError  *string           `gorm:"type:text" json:"resume_index_error,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	// Relations
	Job Job `gorm:"foreignKey:PositionApplied" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// Note is a single internal comment left on a candidate.
type Note struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Notes is stored as a jsonb array.
type Notes []Note

func (n Notes) Value() (driver.Value, error) {
	if n == nil {
		return "[]", nil
	}
	b, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notes: %w", err)
	}
	return string(b), nil
}

func (n *Notes) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*n = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported notes type %T", value)
	}

	if len(raw) == 0 {
		*n = nil
		return nil
	}

	var notes Notes
	if err := json.Unmarshal(raw, &notes); err != nil {
		return fmt.Errorf("failed to decode notes: %w", err)
	}
	*n = notes
	return nil
}
