package sample

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/workflow"
)

// Repository provides sample persistence.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository creates a sample repository.
func NewRepository(pool *pgxpool.Pool, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{pool: pool, logger: logger}
}

const sampleColumns = `
	id, org_id, code, status, priority, test_types, due_date, assigned_to,
	created_at, updated_at
`

// Create inserts a new sample in the registered status.
func (r *Repository) Create(ctx context.Context, s *Sample) error {
	s.Status = workflow.SampleRegistered
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO samples (id, org_id, code, status, priority, test_types, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		s.ID, s.OrgID, s.Code, s.Status, s.Priority, s.TestTypes,
		s.DueDate, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

// Get retrieves a sample scoped to the organization.
func (r *Repository) Get(ctx context.Context, orgID, id string) (*Sample, error) {
	query := `SELECT ` + sampleColumns + ` FROM samples WHERE org_id = $1 AND id = $2`
	return r.scanOne(r.pool.QueryRow(ctx, query, orgID, id))
}

// List retrieves the organization's samples, newest first.
func (r *Repository) List(ctx context.Context, orgID string) ([]*Sample, error) {
	query := `SELECT ` + sampleColumns + ` FROM samples WHERE org_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []*Sample
	for rows.Next() {
		s, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

func (r *Repository) scanOne(row pgx.Row) (*Sample, error) {
	s := &Sample{}
	err := row.Scan(
		&s.ID, &s.OrgID, &s.Code, &s.Status, &s.Priority, &s.TestTypes,
		&s.DueDate, &s.AssignedTo, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Assign sets or clears the sample's assignee.
func (r *Repository) Assign(ctx context.Context, orgID, id string, assignTo *string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE samples SET assigned_to = $1, updated_at = NOW() WHERE org_id = $2 AND id = $3`,
		assignTo, orgID, id)
	if err != nil {
		return fmt.Errorf("update assignee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// StatusForUpdate locks the sample row and returns its current status.
func (r *Repository) StatusForUpdate(ctx context.Context, tx pgx.Tx, orgID, id string) (string, error) {
	var status string
	err := tx.QueryRow(ctx,
		`SELECT status FROM samples WHERE org_id = $1 AND id = $2 FOR UPDATE`,
		orgID, id).Scan(&status)
	return status, err
}

// SetStatus writes the new status.
func (r *Repository) SetStatus(ctx context.Context, tx pgx.Tx, orgID, id, status string, at time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE samples SET status = $1, updated_at = $2 WHERE org_id = $3 AND id = $4`,
		status, at, orgID, id)
	return err
}
