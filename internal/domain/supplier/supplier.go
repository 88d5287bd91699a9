// Package supplier manages product suppliers and their branding assets.
package supplier

import (
	"strings"
	"time"
)

// Supplier is a product supplier visible to an organization's catalog.
type Supplier struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Name           string    `json:"name"`
	Document       string    `json:"document"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	LogoPath       *string   `json:"logoPath,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate checks the required fields on create or update.
func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// SearchFields returns the text fields matched by list filtering.
func (s *Supplier) SearchFields() []string {
	return []string{s.Name, s.Document, s.Email}
}

// StatusValue maps the active flag onto the filter's status axis.
func (s *Supplier) StatusValue() string {
	if s.IsActive {
		return "active"
	}
	return "inactive"
}
