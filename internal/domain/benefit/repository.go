package benefit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const benefitColumns = `id, org_id, partner, title, description, discount_label, valid_from, valid_until, is_active, created_at, updated_at`

// Repository provides partner benefit persistence.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository creates a benefit repository.
func NewRepository(pool *pgxpool.Pool, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{pool: pool, logger: logger}
}

// Create inserts a new partner benefit.
func (r *Repository) Create(ctx context.Context, b *PartnerBenefit) error {
	if err := b.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	b.IsActive = true

	_, err := r.pool.Exec(ctx,
		`INSERT INTO partner_benefits (id, org_id, partner, title, description, discount_label, valid_from, valid_until, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.OrganizationID, b.Partner, b.Title, b.Description, b.DiscountLabel,
		b.ValidFrom, b.ValidUntil, b.IsActive, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert benefit: %w", err)
	}
	return nil
}

// Get fetches a benefit scoped to the organization.
func (r *Repository) Get(ctx context.Context, orgID, id string) (*PartnerBenefit, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+benefitColumns+` FROM partner_benefits WHERE org_id = $1 AND id = $2`, orgID, id)
	return scanOne(row)
}

// List returns the organization's benefits, newest first.
func (r *Repository) List(ctx context.Context, orgID string) ([]*PartnerBenefit, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+benefitColumns+` FROM partner_benefits WHERE org_id = $1 ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("query benefits: %w", err)
	}
	defer rows.Close()

	var benefits []*PartnerBenefit
	for rows.Next() {
		b := &PartnerBenefit{}
		if err := rows.Scan(&b.ID, &b.OrganizationID, &b.Partner, &b.Title, &b.Description,
			&b.DiscountLabel, &b.ValidFrom, &b.ValidUntil, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		benefits = append(benefits, b)
	}
	return benefits, rows.Err()
}

// SetActive toggles a benefit's visibility.
func (r *Repository) SetActive(ctx context.Context, orgID, id string, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE partner_benefits SET is_active = $1, updated_at = NOW() WHERE org_id = $2 AND id = $3`,
		active, orgID, id)
	if err != nil {
		return fmt.Errorf("update benefit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanOne(row pgx.Row) (*PartnerBenefit, error) {
	b := &PartnerBenefit{}
	err := row.Scan(&b.ID, &b.OrganizationID, &b.Partner, &b.Title, &b.Description,
		&b.DiscountLabel, &b.ValidFrom, &b.ValidUntil, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}
