package prescription

import (
	"context"
	"errors"
	"testing"

	"github.com/verdemed/go-vmp/internal/workflow"
)

// Validation failures must reject the request before any persistence work.

func TestReviewRejectsUnknownStatus(t *testing.T) {
	rv := NewReviewer(nil, nil, nil)

	_, err := rv.Review(context.Background(), "org-1", "rx-1", "user-1", "pending", "")
	if !errors.Is(err, workflow.ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}

	_, err = rv.Review(context.Background(), "org-1", "rx-1", "user-1", "cancelado", "")
	if !errors.Is(err, workflow.ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestReviewRejectionRequiresNotes(t *testing.T) {
	rv := NewReviewer(nil, nil, nil)

	_, err := rv.Review(context.Background(), "org-1", "rx-1", "user-1", workflow.PrescriptionRejected, "")
	if !errors.Is(err, ErrNotesRequired) {
		t.Fatalf("expected ErrNotesRequired, got %v", err)
	}

	// Whitespace-only notes do not count.
	_, err = rv.Review(context.Background(), "org-1", "rx-1", "user-1", workflow.PrescriptionRejected, "   ")
	if !errors.Is(err, ErrNotesRequired) {
		t.Fatalf("expected ErrNotesRequired for blank notes, got %v", err)
	}
}

func TestSearchFields(t *testing.T) {
	p := &Prescription{Product: "Oleo CBD", PatientID: "pat-9", DoctorID: "doc-2"}
	fields := p.SearchFields()
	if len(fields) != 3 {
		t.Fatalf("expected 3 search fields, got %d", len(fields))
	}
	if fields[0] != "Oleo CBD" {
		t.Errorf("expected product first, got %q", fields[0])
	}
}
