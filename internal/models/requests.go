package models

import "time"

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Role     string `json:"role" validate:"required,ats_role"`
	Password string `json:"password" validate:"required,min=8"`
}

type CreateJobRequest struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Department  string  `json:"department" validate:"required,max=50"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	Description string  `json:"description" validate:"required"`
	CreatedBy   string  `json:"created_by" validate:"required,uuid"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,job_status"`
}

type CreateCandidateRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email,max=100"`
	Phone           string `json:"phone" validate:"required,max=20"`
	PositionApplied string `json:"position_applied" validate:"required,uuid"`
	Resume          string `json:"resume" validate:"required,max=200"`
}

type UpdateCandidateStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

type UpdateInterviewScoreRequest struct {
	InterviewScore *int `json:"interview_score" validate:"required,min=0,max=100"`
}

type AddNoteRequest struct {
	Author string `json:"author" validate:"required,max=100"`
	Body   string `json:"body" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type JobSummary struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Department string  `json:"department"`
	Location   *string `json:"location,omitempty"`
	Status     string  `json:"status"`
}

type CandidateSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type TimeToHireEntry struct {
	Position      string  `json:"position"`
	AvgTimeToHire string  `json:"avg_time_to_hire"`
	AvgDays       float64 `json:"avg_days"`
	Hires         int64   `json:"hires"`
}

type CandidateMatch struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Status      string  `json:"status"`
	Score       float32 `json:"score"`
	Excerpt     string  `json:"excerpt,omitempty"`
}

type ResumeUploadResponse struct {
	Message     string `json:"message"`
	CandidateID string `json:"candidate_id"`
	Resume      string `json:"resume"`
	IndexStatus string `json:"index_status"`
}

type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}
