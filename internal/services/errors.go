package services

import "errors"

var (
	ErrCreatorNotFound        = errors.New("created_by does not reference an existing user")
	ErrJobNotFound            = errors.New("job not found")
	ErrPositionNotFound       = errors.New("position_applied does not reference an existing job")
	ErrCandidateNotFound      = errors.New("candidate not found")
	ErrEmailTaken             = errors.New("email already exists")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidTransition      = errors.New("status transition not allowed")
	ErrInvalidScore           = errors.New("interview score must be between 0 and 100")
	ErrInvalidFile            = errors.New("invalid resume file")
	ErrSemanticSearchDisabled = errors.New("semantic search is not configured")
)
