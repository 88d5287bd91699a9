// Package main provides the notification worker entry point.
// Consumes status-change events and delivers them to webhook subscribers.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/config"
	"github.com/verdemed/go-vmp/internal/infrastructure/redpanda"
	"github.com/verdemed/go-vmp/internal/notify"
	"github.com/verdemed/go-vmp/internal/observability/metrics"
	"github.com/verdemed/go-vmp/internal/workflow"
	"github.com/verdemed/go-vmp/pkg/circuitbreaker"
	"github.com/verdemed/go-vmp/pkg/idempotency"
	"github.com/verdemed/go-vmp/pkg/workerpool"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	m := metrics.New()

	subs := notify.NewSubscriptionRepository(pool, logger)
	breakers := circuitbreaker.NewManager(m.CircuitBreakerState, logger)
	deliverer := notify.NewDeliverer(breakers, m.NotificationsDelivered, logger)

	inbox := idempotency.NewInbox(pool, idempotency.DefaultConfig(), logger)
	inbox.StartCleanup()
	defer inbox.Stop()

	poolCfg := workerpool.DefaultConfig()
	if cfg.NotifyWorkers > 0 {
		poolCfg.Workers = cfg.NotifyWorkers
	}

	workers, err := workerpool.New(poolCfg, func(ctx context.Context, task *workerpool.Task) *workerpool.Result {
		return deliverTask(ctx, task, subs, deliverer, inbox, logger)
	}, logger)
	if err != nil {
		logger.Fatal("worker pool creation failed", zap.Error(err))
	}

	workers.Start()
	defer workers.Stop()

	consumerCfg := redpanda.DefaultConsumerConfig()
	consumerCfg.Brokers = cfg.KafkaBrokers
	consumerCfg.GroupID = "notify-worker"
	consumerCfg.Topics = []string{redpanda.TopicStatusChanges}

	consumer, err := redpanda.NewConsumer(consumerCfg, func(ctx context.Context, msg *redpanda.ConsumedMessage) error {
		task := &workerpool.Task{
			ID:      string(msg.Key),
			Payload: msg.Value,
			Context: ctx,
		}
		return workers.Submit(task)
	}, logger)
	if err != nil {
		logger.Fatal("consumer creation failed", zap.Error(err))
	}

	consumer.Start()
	logger.Info("notify worker started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	consumer.Stop()
	logger.Info("notify worker stopped")
}

func deliverTask(ctx context.Context, task *workerpool.Task, subs *notify.SubscriptionRepository, deliverer *notify.Deliverer, inbox *idempotency.Inbox, logger *zap.Logger) *workerpool.Result {
	var event workflow.StatusChange
	if err := json.Unmarshal(task.Payload, &event); err != nil {
		return &workerpool.Result{TaskID: task.ID, Success: false, Error: err}
	}

	matching, err := subs.ListMatching(ctx, event.OrgID, event.Kind)
	if err != nil {
		return &workerpool.Result{TaskID: task.ID, Success: false, Error: err}
	}

	for _, sub := range matching {
		key := idempotency.DeliveryKey(sub.ID, string(event.Kind), event.EntityID, event.ChangedAt)
		_, err := inbox.Process(ctx, key, "webhook-delivery", task.Payload, func(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
			if err := deliverer.Deliver(ctx, sub, payload); err != nil {
				return nil, err
			}
			return json.RawMessage(`{"delivered":true}`), nil
		})
		if err != nil {
			return &workerpool.Result{
				TaskID:  task.ID,
				Success: false,
				Error:   fmt.Errorf("deliver to %s: %w", sub.URL, err),
			}
		}
	}

	logger.Info("status change fanned out",
		zap.String("kind", string(event.Kind)),
		zap.String("entity_id", event.EntityID),
		zap.Int("subscriptions", len(matching)),
	)
	return &workerpool.Result{TaskID: task.ID, Success: true}
}
