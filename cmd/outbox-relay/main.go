// Package main provides the outbox relay service entry point.
// Implements the transactional outbox pattern relay.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/config"
	"github.com/verdemed/go-vmp/internal/infrastructure/postgres"
	"github.com/verdemed/go-vmp/internal/infrastructure/redpanda"
	"github.com/verdemed/go-vmp/internal/observability/metrics"
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

	logger.Info("connected to database")

	producerCfg := redpanda.DefaultProducerConfig()
	producerCfg.Brokers = cfg.KafkaBrokers

	producer, err := redpanda.NewProducer(producerCfg, logger)
	if err != nil {
		logger.Fatal("producer creation failed", zap.Error(err))
	}
	defer producer.Close()

	logger.Info("connected to Redpanda", zap.Strings("brokers", cfg.KafkaBrokers))

	m := metrics.New()

	outboxCfg := postgres.DefaultOutboxConfig()
	outbox := postgres.NewOutbox(pool, &producerAdapter{producer}, outboxCfg, logger)

	outbox.Start()
	logger.Info("outbox relay started")

	// Periodic housekeeping: backlog gauge, dead-lettering, cleanup.
	stopHousekeeping := make(chan struct{})
	go housekeeping(pool, outbox, m, logger, stopHousekeeping)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	close(stopHousekeeping)
	outbox.Stop()
	logger.Info("outbox relay stopped")
}

func housekeeping(pool *pgxpool.Pool, outbox *postgres.Outbox, m *metrics.Metrics, logger *zap.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

			if stats, err := outbox.GetStats(ctx); err == nil {
				m.OutboxPending.Set(float64(stats.Pending))
			}
			if moved, err := outbox.MoveToDeadLetter(ctx); err != nil {
				logger.Error("dead-letter sweep failed", zap.Error(err))
			} else if moved > 0 {
				logger.Warn("entries moved to dead letter", zap.Int64("count", moved))
			}
			if _, err := outbox.CleanupProcessed(ctx, 24*time.Hour); err != nil {
				logger.Error("cleanup failed", zap.Error(err))
			}

			cancel()
		}
	}
}

// producerAdapter adapts the Redpanda producer to the OutboxPublisher interface.
type producerAdapter struct {
	producer *redpanda.Producer
}

func (a *producerAdapter) Publish(ctx context.Context, topic, key string, value []byte) error {
	return a.producer.ProduceMessage(ctx, topic, key, value)
}
