package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Repository provides catalog persistence.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository creates a catalog repository.
func NewRepository(pool *pgxpool.Pool, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{pool: pool, logger: logger}
}

// ListModules returns the full module catalog.
func (r *Repository) ListModules(ctx context.Context) ([]*Module, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, key, name, description, is_active, created_at, updated_at FROM modules ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	defer rows.Close()

	var modules []*Module
	for rows.Next() {
		m := &Module{}
		if err := rows.Scan(&m.ID, &m.Key, &m.Name, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// ListPlans returns all module plans.
func (r *Repository) ListPlans(ctx context.Context) ([]*Plan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, module_id, name, price_cents, billing_period FROM module_plans ORDER BY module_id, price_cents`)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var plans []*Plan
	for rows.Next() {
		p := &Plan{}
		if err := rows.Scan(&p.ID, &p.ModuleID, &p.Name, &p.PriceCents, &p.BillingPeriod); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// SetModuleActive flips a module's global availability flag.
func (r *Repository) SetModuleActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE modules SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("update module: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListOrganizationModules returns the organization's module subscriptions.
func (r *Repository) ListOrganizationModules(ctx context.Context, orgID string) ([]*OrganizationModule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT org_id, module_id, plan_id, status, activated_at FROM organization_modules WHERE org_id = $1`, orgID)
	if err != nil {
		return nil, fmt.Errorf("query organization modules: %w", err)
	}
	defer rows.Close()

	var subs []*OrganizationModule
	for rows.Next() {
		om := &OrganizationModule{}
		if err := rows.Scan(&om.OrgID, &om.ModuleID, &om.PlanID, &om.Status, &om.ActivatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, om)
	}
	return subs, rows.Err()
}
