package models

import (
	"testing"
	"time"
)

func TestNotesValue_NilEncodesEmptyArray(t *testing.T) {
	var notes Notes
	v, err := notes.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "[]" {
		t.Fatalf("expected [], got %v", v)
	}
}

func TestNotesScan(t *testing.T) {
	raw := []byte(`[{"author":"alice","body":"strong portfolio","created_at":"2024-01-02T03:04:05Z"}]`)

	var notes Notes
	if err := notes.Scan(raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 1 || notes[0].Author != "alice" {
		t.Fatalf("unexpected notes %+v", notes)
	}
	if !notes[0].CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %s", notes[0].CreatedAt)
	}

	if err := notes.Scan(nil); err != nil || notes != nil {
		t.Fatalf("expected nil scan to reset notes, got %v %v", notes, err)
	}
	if err := notes.Scan(`[]`); err != nil || len(notes) != 0 {
		t.Fatalf("expected empty notes from string, got %v %v", notes, err)
	}
	if err := notes.Scan(42); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestCandidateStatusIsHired(t *testing.T) {
	for _, s := range []CandidateStatus{"Hired", "hired", "HIRED"} {
		if !s.IsHired() {
			t.Fatalf("%q should count as hired", s)
		}
	}
	if CandidateStatus("Offer").IsHired() {
		t.Fatalf("Offer is not hired")
	}
}

func TestVocabularies(t *testing.T) {
	if !IsValidUserRole("Hiring Manager") || IsValidUserRole("Chef") {
		t.Fatalf("unexpected role validation")
	}
	if !IsValidJobStatus("Closed") || IsValidJobStatus("Archived") {
		t.Fatalf("unexpected job status validation")
	}
}
