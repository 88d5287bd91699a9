// Package sample implements laboratory samples and their lifecycle.
package sample

import "time"

// Priorities a sample can carry.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Sample is a laboratory sample tracked from registration to archival.
type Sample struct {
	ID         string     `json:"id"`
	OrgID      string     `json:"organizationId"`
	Code       string     `json:"code"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	TestTypes  []string   `json:"testTypes"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	AssignedTo *string    `json:"assignedTo,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// SearchFields returns the fields matched by free-text search.
func (s *Sample) SearchFields() []string {
	fields := []string{s.Code}
	return append(fields, s.TestTypes...)
}

// StatusValue returns the sample's current status.
func (s *Sample) StatusValue() string { return s.Status }
