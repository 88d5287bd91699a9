// Package catalog implements the platform's add-on module catalog: modules,
// their subscription plans, and per-organization activations.
package catalog

import "time"

// Module is an add-on feature organizations can subscribe to.
type Module struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Plan is a billing plan for a module.
type Plan struct {
	ID            string `json:"id"`
	ModuleID      string `json:"moduleId"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"priceCents"`
	BillingPeriod string `json:"billingPeriod"`
}

// OrganizationModule records an organization's subscription to a module.
type OrganizationModule struct {
	OrgID       string     `json:"organizationId"`
	ModuleID    string     `json:"moduleId"`
	PlanID      *string    `json:"planId,omitempty"`
	Status      string     `json:"status"`
	ActivatedAt *time.Time `json:"activatedAt,omitempty"`
}
