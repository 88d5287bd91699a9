package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/workflow"
)

// Repository provides ticket persistence.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository creates a ticket repository.
func NewRepository(pool *pgxpool.Pool, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{pool: pool, logger: logger}
}

const ticketColumns = `
	id, org_id, title, description, status, priority, category,
	created_by, assigned_to, created_at, updated_at, resolved_at, closed_at
`

// Create inserts a new ticket in the "novo" status.
func (r *Repository) Create(ctx context.Context, t *Ticket) error {
	t.Status = workflow.TicketNovo
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO tickets (id, org_id, title, description, status, priority, category, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		t.ID, t.OrgID, t.Title, t.Description, t.Status,
		t.Priority, t.Category, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// Get retrieves a ticket scoped to the organization.
func (r *Repository) Get(ctx context.Context, orgID, id string) (*Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE org_id = $1 AND id = $2`
	return r.scanOne(r.pool.QueryRow(ctx, query, orgID, id))
}

// List retrieves the organization's tickets, newest first.
func (r *Repository) List(ctx context.Context, orgID string) ([]*Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE org_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*Ticket
	for rows.Next() {
		t, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *Repository) scanOne(row pgx.Row) (*Ticket, error) {
	t := &Ticket{}
	err := row.Scan(
		&t.ID, &t.OrgID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.Category, &t.CreatedBy, &t.AssignedTo, &t.CreatedAt, &t.UpdatedAt,
		&t.ResolvedAt, &t.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// SetPriority updates the ticket's priority.
func (r *Repository) SetPriority(ctx context.Context, orgID, id, priority string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tickets SET priority = $1, updated_at = NOW() WHERE org_id = $2 AND id = $3`,
		priority, orgID, id)
	if err != nil {
		return fmt.Errorf("update priority: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Assign sets or clears the ticket's assignee.
func (r *Repository) Assign(ctx context.Context, orgID, id string, assignTo *string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tickets SET assigned_to = $1, updated_at = NOW() WHERE org_id = $2 AND id = $3`,
		assignTo, orgID, id)
	if err != nil {
		return fmt.Errorf("update assignee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddComment appends a comment to the ticket's thread.
func (r *Repository) AddComment(ctx context.Context, c *Comment) error {
	c.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ticket_comments (id, ticket_id, author_id, content, is_internal, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.TicketID, c.AuthorID, c.Content, c.IsInternal, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// ListComments returns the ticket's thread in posting order. Internal
// comments are omitted unless includeInternal is set.
func (r *Repository) ListComments(ctx context.Context, ticketID string, includeInternal bool) ([]*Comment, error) {
	query := `
		SELECT id, ticket_id, author_id, content, is_internal, created_at
		FROM ticket_comments
		WHERE ticket_id = $1 AND (is_internal = FALSE OR $2)
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, ticketID, includeInternal)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.TicketID, &c.AuthorID, &c.Content, &c.IsInternal, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// StatusForUpdate locks the ticket row and returns its current status.
func (r *Repository) StatusForUpdate(ctx context.Context, tx pgx.Tx, orgID, id string) (string, error) {
	var status string
	err := tx.QueryRow(ctx,
		`SELECT status FROM tickets WHERE org_id = $1 AND id = $2 FOR UPDATE`,
		orgID, id).Scan(&status)
	return status, err
}

// SetStatus writes the new status. Reaching resolvido or fechado stamps the
// corresponding terminal timestamp exactly once.
func (r *Repository) SetStatus(ctx context.Context, tx pgx.Tx, orgID, id, status string, at time.Time) error {
	query := `
		UPDATE tickets
		SET status = $1,
		    updated_at = $2,
		    resolved_at = CASE WHEN $1 = 'resolvido' THEN $2 ELSE resolved_at END,
		    closed_at   = CASE WHEN $1 = 'fechado'   THEN $2 ELSE closed_at END
		WHERE org_id = $3 AND id = $4
	`
	_, err := tx.Exec(ctx, query, status, at, orgID, id)
	return err
}
