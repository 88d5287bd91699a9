// Package notify delivers workflow status-change events to organization
// webhook endpoints.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/workflow"
)

// Subscription is one webhook endpoint registered by an organization. An
// empty Kinds list subscribes to every entity kind.
type Subscription struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"organizationId"`
	URL       string    `json:"url"`
	Secret    string    `json:"-"`
	Kinds     []string  `json:"kinds"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Matches reports whether the subscription wants events for kind.
func (s *Subscription) Matches(kind workflow.Kind) bool {
	if !s.IsActive {
		return false
	}
	if len(s.Kinds) == 0 {
		return true
	}
	for _, k := range s.Kinds {
		if k == string(kind) {
			return true
		}
	}
	return false
}

// SubscriptionRepository loads webhook subscriptions.
type SubscriptionRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewSubscriptionRepository creates a subscription repository.
func NewSubscriptionRepository(pool *pgxpool.Pool, logger *zap.Logger) *SubscriptionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionRepository{pool: pool, logger: logger}
}

// ListForOrg returns the organization's active subscriptions.
func (r *SubscriptionRepository) ListForOrg(ctx context.Context, orgID string) ([]*Subscription, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, org_id, url, secret, kinds, is_active, created_at
		 FROM webhook_subscriptions
		 WHERE org_id = $1 AND is_active = true`, orgID)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*Subscription
	for rows.Next() {
		s := &Subscription{}
		if err := rows.Scan(&s.ID, &s.OrgID, &s.URL, &s.Secret, &s.Kinds, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// ListMatching returns the active subscriptions interested in events of the
// given kind.
func (r *SubscriptionRepository) ListMatching(ctx context.Context, orgID string, kind workflow.Kind) ([]*Subscription, error) {
	subs, err := r.ListForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	matched := subs[:0]
	for _, s := range subs {
		if s.Matches(kind) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}
