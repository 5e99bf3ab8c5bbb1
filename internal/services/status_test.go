package services

import (
	"errors"
	"testing"

	"alfredoptarigan/enterprise-ats/internal/models"
)

func TestStatusPolicy_LenientStoresAnyValue(t *testing.T) {
	policy := NewStatusPolicy(false)

	got, err := policy.Resolve(models.CandidateApplied, "On Hold")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "On Hold" {
		t.Fatalf("expected value stored verbatim, got %q", got)
	}

	if _, err := policy.Resolve(models.CandidateApplied, "   "); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for blank status, got %v", err)
	}
}

func TestStatusPolicy_Strict(t *testing.T) {
	policy := NewStatusPolicy(true)

	tests := []struct {
		name      string
		current   models.CandidateStatus
		requested string
		want      models.CandidateStatus
		wantErr   error
	}{
		{"applied to screening", models.CandidateApplied, "Screening", models.CandidateScreening, nil},
		{"case insensitive", models.CandidateScreening, "interview", models.CandidateInterview, nil},
		{"offer to hired", models.CandidateOffer, "Hired", models.CandidateHired, nil},
		{"reject from interview", models.CandidateInterview, "Rejected", models.CandidateRejected, nil},
		{"same status", models.CandidateInterview, "Interview", models.CandidateInterview, nil},
		{"free form current re-enters", "On Hold", "Interview", models.CandidateInterview, nil},
		{"skip ahead", models.CandidateApplied, "Hired", "", ErrInvalidTransition},
		{"hired is terminal", models.CandidateHired, "Screening", "", ErrInvalidTransition},
		{"rejected is terminal", models.CandidateRejected, "Applied", "", ErrInvalidTransition},
		{"unknown value", models.CandidateApplied, "On Hold", "", ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Resolve(tt.current, tt.requested)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
