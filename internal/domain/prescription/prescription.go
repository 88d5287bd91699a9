// Package prescription implements prescriptions and the pharmacist review
// flow: every prescription enters pending and a pharmacist moves it to
// approved or rejected exactly once.
package prescription

import (
	"errors"
	"time"
)

// ErrNotesRequired is returned when a rejection carries no reviewer notes.
var ErrNotesRequired = errors.New("reviewer notes are required to reject")

// ErrAlreadyReviewed is returned on any review attempt after the first.
var ErrAlreadyReviewed = errors.New("prescription already reviewed")

// Prescription is a product prescription issued by a doctor and reviewed by
// a pharmacist.
type Prescription struct {
	ID           string     `json:"id"`
	OrgID        string     `json:"organizationId"`
	PatientID    string     `json:"patientId"`
	DoctorID     string     `json:"doctorId"`
	Product      string     `json:"product"`
	Dosage       string     `json:"dosage"`
	Instructions string     `json:"instructions"`
	Duration     string     `json:"duration"`
	Status       string     `json:"status"`
	ReviewNotes  *string    `json:"reviewNotes,omitempty"`
	ReviewedBy   *string    `json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// SearchFields returns the fields matched by free-text search.
func (p *Prescription) SearchFields() []string {
	return []string{p.Product, p.PatientID, p.DoctorID}
}

// StatusValue returns the prescription's current status.
func (p *Prescription) StatusValue() string { return p.Status }
