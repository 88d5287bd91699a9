// Package ticket implements support tickets and their comment threads.
package ticket

import (
	"time"
)

// Priorities a ticket can carry.
const (
	PriorityBaixa   = "baixa"
	PriorityMedia   = "media"
	PriorityAlta    = "alta"
	PriorityUrgente = "urgente"
)

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p string) bool {
	switch p {
	case PriorityBaixa, PriorityMedia, PriorityAlta, PriorityUrgente:
		return true
	}
	return false
}

// Ticket is a support ticket owned by an organization.
type Ticket struct {
	ID          string     `json:"id"`
	OrgID       string     `json:"organizationId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	CreatedBy   string     `json:"createdBy"`
	AssignedTo  *string    `json:"assignedTo,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
}

// SearchFields returns the fields matched by free-text search.
func (t *Ticket) SearchFields() []string {
	return []string{t.Title, t.Description, t.Category}
}

// StatusValue returns the ticket's current status.
func (t *Ticket) StatusValue() string { return t.Status }

// Comment is one entry in a ticket's thread. Internal comments are only
// visible to platform staff.
type Comment struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticketId"`
	AuthorID   string    `json:"authorId"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`
}
