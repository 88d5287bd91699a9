package supplier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrNameRequired is returned when a supplier is created without a name.
var ErrNameRequired = errors.New("supplier name is required")

const supplierColumns = `id, org_id, name, document, email, phone, logo_path, is_active, created_at, updated_at`

// Repository provides supplier persistence.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository creates a supplier repository.
func NewRepository(pool *pgxpool.Pool, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{pool: pool, logger: logger}
}

// Create inserts a new supplier.
func (r *Repository) Create(ctx context.Context, s *Supplier) error {
	if err := s.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	s.IsActive = true

	_, err := r.pool.Exec(ctx,
		`INSERT INTO suppliers (id, org_id, name, document, email, phone, logo_path, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.OrganizationID, s.Name, s.Document, s.Email, s.Phone, s.LogoPath, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// Get fetches a supplier scoped to the organization.
func (r *Repository) Get(ctx context.Context, orgID, id string) (*Supplier, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE org_id = $1 AND id = $2`, orgID, id)
	return scanOne(row)
}

// List returns the organization's suppliers, newest first.
func (r *Repository) List(ctx context.Context, orgID string) ([]*Supplier, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE org_id = $1 ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*Supplier
	for rows.Next() {
		s := &Supplier{}
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.Name, &s.Document, &s.Email, &s.Phone,
			&s.LogoPath, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

// Update rewrites the mutable supplier fields.
func (r *Repository) Update(ctx context.Context, s *Supplier) error {
	if err := s.Validate(); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE suppliers SET name = $1, document = $2, email = $3, phone = $4, is_active = $5, updated_at = NOW()
		 WHERE org_id = $6 AND id = $7`,
		s.Name, s.Document, s.Email, s.Phone, s.IsActive, s.OrganizationID, s.ID)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetLogo records the stored logo path for a supplier.
func (r *Repository) SetLogo(ctx context.Context, orgID, id, path string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE suppliers SET logo_path = $1, updated_at = NOW() WHERE org_id = $2 AND id = $3`,
		path, orgID, id)
	if err != nil {
		return fmt.Errorf("set supplier logo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanOne(row pgx.Row) (*Supplier, error) {
	s := &Supplier{}
	err := row.Scan(&s.ID, &s.OrganizationID, &s.Name, &s.Document, &s.Email, &s.Phone,
		&s.LogoPath, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}
