package prescription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/verdemed/go-vmp/internal/workflow"
)

// Reviewer runs the pharmacist review flow on top of the workflow executor:
// one transaction moves the status and stamps the review columns together.
type Reviewer struct {
	repo     *Repository
	exec     *workflow.Executor
	outcomes *prometheus.CounterVec
}

// NewReviewer creates a reviewer. outcomes may be nil.
func NewReviewer(repo *Repository, exec *workflow.Executor, outcomes *prometheus.CounterVec) *Reviewer {
	return &Reviewer{repo: repo, exec: exec, outcomes: outcomes}
}

// Review applies a pharmacist's decision. status must be approved or
// rejected; rejection requires non-empty notes. Reviewing a non-pending
// prescription returns ErrAlreadyReviewed.
func (rv *Reviewer) Review(ctx context.Context, orgID, id, reviewerID, status, notes string) (*Prescription, error) {
	if status != workflow.PrescriptionApproved && status != workflow.PrescriptionRejected {
		return nil, fmt.Errorf("%w: prescription %q", workflow.ErrUnknownStatus, status)
	}
	notes = strings.TrimSpace(notes)
	if status == workflow.PrescriptionRejected && notes == "" {
		return nil, ErrNotesRequired
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	now := time.Now().UTC()
	_, err := rv.exec.Transition(ctx, orgID, id, status, workflow.TransitionOpts{
		ChangedBy: reviewerID,
		BeforeCommit: func(ctx context.Context, tx pgx.Tx) error {
			return rv.repo.setReview(ctx, tx, orgID, id, reviewerID, notesPtr, now)
		},
	})
	if err != nil {
		if errors.Is(err, workflow.ErrInvalidTransition) {
			// The only invalid review transition is out of a terminal state.
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	if rv.outcomes != nil {
		rv.outcomes.WithLabelValues(status).Inc()
	}

	return rv.repo.Get(ctx, orgID, id)
}
