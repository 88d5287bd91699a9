// Package benefit manages partner benefits offered to organization members.
package benefit

import (
	"errors"
	"strings"
	"time"
)

// Validation errors surfaced to the API as 422 responses.
var (
	ErrTitleRequired   = errors.New("benefit title is required")
	ErrPartnerRequired = errors.New("benefit partner is required")
	ErrInvalidPeriod   = errors.New("validUntil must be after validFrom")
)

// PartnerBenefit is a discount or perk offered by a commercial partner.
type PartnerBenefit struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Partner        string     `json:"partner"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DiscountLabel  string     `json:"discountLabel"`
	ValidFrom      time.Time  `json:"validFrom"`
	ValidUntil     *time.Time `json:"validUntil,omitempty"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Validate checks required fields and the validity window.
func (b *PartnerBenefit) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(b.Partner) == "" {
		return ErrPartnerRequired
	}
	if b.ValidUntil != nil && !b.ValidUntil.After(b.ValidFrom) {
		return ErrInvalidPeriod
	}
	return nil
}

// CurrentlyValid reports whether the benefit is active at the given instant.
func (b *PartnerBenefit) CurrentlyValid(at time.Time) bool {
	if !b.IsActive {
		return false
	}
	if at.Before(b.ValidFrom) {
		return false
	}
	if b.ValidUntil != nil && at.After(*b.ValidUntil) {
		return false
	}
	return true
}

// SearchFields returns the text fields matched by list filtering.
func (b *PartnerBenefit) SearchFields() []string {
	return []string{b.Partner, b.Title, b.Description}
}

// StatusValue maps the active flag onto the filter's status axis.
func (b *PartnerBenefit) StatusValue() string {
	if b.IsActive {
		return "active"
	}
	return "inactive"
}
