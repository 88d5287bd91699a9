package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/workflow"
)

// Repository provides prescription persistence.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository creates a prescription repository.
func NewRepository(pool *pgxpool.Pool, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{pool: pool, logger: logger}
}

const prescriptionColumns = `
	id, org_id, patient_id, doctor_id, product, dosage, instructions, duration,
	status, review_notes, reviewed_by, reviewed_at, created_at, updated_at
`

// Create inserts a new prescription in the pending status.
func (r *Repository) Create(ctx context.Context, p *Prescription) error {
	p.Status = workflow.PrescriptionPending
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO prescriptions (id, org_id, patient_id, doctor_id, product, dosage, instructions, duration, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.OrgID, p.PatientID, p.DoctorID, p.Product, p.Dosage,
		p.Instructions, p.Duration, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prescription: %w", err)
	}
	return nil
}

// Get retrieves a prescription scoped to the organization.
func (r *Repository) Get(ctx context.Context, orgID, id string) (*Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE org_id = $1 AND id = $2`
	return r.scanOne(r.pool.QueryRow(ctx, query, orgID, id))
}

// List retrieves the organization's prescriptions, newest first.
func (r *Repository) List(ctx context.Context, orgID string) ([]*Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE org_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("query prescriptions: %w", err)
	}
	defer rows.Close()

	var prescriptions []*Prescription
	for rows.Next() {
		p, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, rows.Err()
}

func (r *Repository) scanOne(row pgx.Row) (*Prescription, error) {
	p := &Prescription{}
	err := row.Scan(
		&p.ID, &p.OrgID, &p.PatientID, &p.DoctorID, &p.Product, &p.Dosage,
		&p.Instructions, &p.Duration, &p.Status, &p.ReviewNotes, &p.ReviewedBy,
		&p.ReviewedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// StatusForUpdate locks the prescription row and returns its current status.
func (r *Repository) StatusForUpdate(ctx context.Context, tx pgx.Tx, orgID, id string) (string, error) {
	var status string
	err := tx.QueryRow(ctx,
		`SELECT status FROM prescriptions WHERE org_id = $1 AND id = $2 FOR UPDATE`,
		orgID, id).Scan(&status)
	return status, err
}

// SetStatus writes the new status.
func (r *Repository) SetStatus(ctx context.Context, tx pgx.Tx, orgID, id, status string, at time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE prescriptions SET status = $1, updated_at = $2 WHERE org_id = $3 AND id = $4`,
		status, at, orgID, id)
	return err
}

// setReview stamps the review columns inside the review transaction. Once
// written they are never updated again; the guard table makes approved and
// rejected terminal.
func (r *Repository) setReview(ctx context.Context, tx pgx.Tx, orgID, id, reviewerID string, notes *string, at time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE prescriptions SET review_notes = $1, reviewed_by = $2, reviewed_at = $3 WHERE org_id = $4 AND id = $5`,
		notes, reviewerID, at, orgID, id)
	return err
}
