package order

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Repository provides order persistence.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository creates an order repository.
func NewRepository(pool *pgxpool.Pool, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{pool: pool, logger: logger}
}

const orderColumns = `
	id, org_id, order_number, customer_id, status, total_cents, items,
	shipping_address, payment_method, created_at, updated_at
`

// Get retrieves an order scoped to the organization.
func (r *Repository) Get(ctx context.Context, orgID, id string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE org_id = $1 AND id = $2`
	return r.scanOne(r.pool.QueryRow(ctx, query, orgID, id))
}

// List retrieves the organization's orders, newest first.
func (r *Repository) List(ctx context.Context, orgID string) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE org_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *Repository) scanOne(row pgx.Row) (*Order, error) {
	o := &Order{}
	err := row.Scan(
		&o.ID, &o.OrgID, &o.OrderNumber, &o.CustomerID, &o.Status,
		&o.TotalCents, &o.Items, &o.ShippingAddress, &o.PaymentMethod,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// StatusForUpdate locks the order row and returns its current status.
func (r *Repository) StatusForUpdate(ctx context.Context, tx pgx.Tx, orgID, id string) (string, error) {
	var status string
	err := tx.QueryRow(ctx,
		`SELECT status FROM orders WHERE org_id = $1 AND id = $2 FOR UPDATE`,
		orgID, id).Scan(&status)
	return status, err
}

// SetStatus writes the new status.
func (r *Repository) SetStatus(ctx context.Context, tx pgx.Tx, orgID, id, status string, at time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE org_id = $3 AND id = $4`,
		status, at, orgID, id)
	return err
}
