package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/infrastructure/postgres"
)

// ErrNotFound is returned when the entity does not exist in the caller's
// organization.
var ErrNotFound = errors.New("entity not found")

// Store is the per-entity persistence hook the executor drives. Both methods
// run inside the executor's transaction; StatusForUpdate must lock the row so
// concurrent transitions from other sessions serialize behind the guard.
type Store interface {
	StatusForUpdate(ctx context.Context, tx pgx.Tx, orgID, id string) (string, error)
	SetStatus(ctx context.Context, tx pgx.Tx, orgID, id, status string, at time.Time) error
}

// StatusChange is the event emitted for every committed transition. It is the
// outbox payload published to the status-changes topic.
type StatusChange struct {
	Kind      Kind      `json:"kind"`
	EntityID  string    `json:"entity_id"`
	OrgID     string    `json:"org_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy string    `json:"changed_by,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// TransitionOpts carries optional per-transition data.
type TransitionOpts struct {
	// ChangedBy is the acting user, recorded on the emitted event.
	ChangedBy string
	// BeforeCommit, if set, runs inside the transaction after the status
	// write. Used by flows that persist extra columns atomically with the
	// transition (prescription review notes, ticket resolution stamps).
	BeforeCommit func(ctx context.Context, tx pgx.Tx) error
}

// Executor performs guarded status transitions for one entity kind: lock the
// row, check the transition table, write the new status, write the outbox
// entry, commit. Nothing is mutated when the guard fails.
type Executor struct {
	pool        *pgxpool.Pool
	kind        Kind
	store       Store
	topic       string
	logger      *zap.Logger
	tracer      trace.Tracer
	transitions *prometheus.CounterVec
}

// NewExecutor creates an executor for one entity kind. topic is the Kafka
// topic status-change events are relayed to; transitions may be nil.
func NewExecutor(pool *pgxpool.Pool, kind Kind, store Store, topic string, transitions *prometheus.CounterVec, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		pool:        pool,
		kind:        kind,
		store:       store,
		topic:       topic,
		logger:      logger,
		tracer:      otel.Tracer("workflow-executor"),
		transitions: transitions,
	}
}

// Transition moves the entity to the target status. Returns ErrNotFound when
// the entity is missing, ErrUnknownStatus / ErrInvalidTransition when the
// guard rejects the target.
func (e *Executor) Transition(ctx context.Context, orgID, id, target string, opts TransitionOpts) (*StatusChange, error) {
	ctx, span := e.tracer.Start(ctx, "workflow_transition",
		trace.WithAttributes(
			attribute.String("kind", string(e.kind)),
			attribute.String("entity_id", id),
			attribute.String("target", target),
		))
	defer span.End()

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := e.store.StatusForUpdate(ctx, tx, orgID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %s", ErrNotFound, e.kind, id)
		}
		return nil, fmt.Errorf("load status: %w", err)
	}

	if err := Guard(e.kind, current, target); err != nil {
		span.RecordError(err)
		return nil, err
	}

	now := time.Now().UTC()
	if err := e.store.SetStatus(ctx, tx, orgID, id, target, now); err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	if opts.BeforeCommit != nil {
		if err := opts.BeforeCommit(ctx, tx); err != nil {
			return nil, err
		}
	}

	change := &StatusChange{
		Kind:      e.kind,
		EntityID:  id,
		OrgID:     orgID,
		From:      current,
		To:        target,
		ChangedBy: opts.ChangedBy,
		ChangedAt: now,
	}

	payload, err := json.Marshal(change)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	entry := &postgres.OutboxEntry{
		AggregateID:   id,
		AggregateType: string(e.kind),
		EventType:     "StatusChanged",
		Payload:       payload,
		KafkaTopic:    e.topic,
		KafkaKey:      id,
	}
	if err := postgres.WriteEntry(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	if e.transitions != nil {
		e.transitions.WithLabelValues(string(e.kind), target).Inc()
	}

	e.logger.Info("status transition",
		zap.String("kind", string(e.kind)),
		zap.String("entity_id", id),
		zap.String("org_id", orgID),
		zap.String("from", current),
		zap.String("to", target),
		zap.String("changed_by", opts.ChangedBy),
	)

	return change, nil
}
