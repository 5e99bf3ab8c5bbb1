package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/enterprise-ats/internal/models"
)

// StatusPolicy decides which candidate status writes are accepted.
//
// In lenient mode any non-empty value is stored verbatim. In strict mode the
// value must name a known status and follow the hiring pipeline.
type StatusPolicy struct {
	strict bool
}

var candidateTransitions = map[models.CandidateStatus][]models.CandidateStatus{
	models.CandidateApplied:   {models.CandidateScreening, models.CandidateRejected},
	models.CandidateScreening: {models.CandidateInterview, models.CandidateRejected},
	models.CandidateInterview: {models.CandidateOffer, models.CandidateRejected},
	models.CandidateOffer:     {models.CandidateHired, models.CandidateRejected},
	models.CandidateHired:     {},
	models.CandidateRejected:  {},
}

func NewStatusPolicy(strict bool) *StatusPolicy {
	return &StatusPolicy{strict: strict}
}

func (p *StatusPolicy) Strict() bool {
	return p.strict
}

// Resolve returns the status to persist when moving from current to requested.
func (p *StatusPolicy) Resolve(current models.CandidateStatus, requested string) (models.CandidateStatus, error) {
	if strings.TrimSpace(requested) == "" {
		return "", fmt.Errorf("%w: status is required", ErrInvalidStatus)
	}

	if !p.strict {
		return models.CandidateStatus(requested), nil
	}

	next, ok := canonicalStatus(requested)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a known candidate status", ErrInvalidStatus, requested)
	}

	from, ok := canonicalStatus(string(current))
	if !ok {
		// Rows written in lenient mode may carry free-form values; let them re-enter the pipeline.
		return next, nil
	}

	if from == next {
		return next, nil
	}

	for _, allowed := range candidateTransitions[from] {
		if allowed == next {
			return next, nil
		}
	}

	return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, next)
}

func canonicalStatus(value string) (models.CandidateStatus, bool) {
	value = strings.TrimSpace(value)
	for status := range candidateTransitions {
		if strings.EqualFold(string(status), value) {
			return status, true
		}
	}
	return "", false
}
