// Package main provides the admin API service entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/api/handlers"
	"github.com/verdemed/go-vmp/internal/api/middleware"
	"github.com/verdemed/go-vmp/internal/config"
	"github.com/verdemed/go-vmp/internal/domain/benefit"
	"github.com/verdemed/go-vmp/internal/domain/catalog"
	"github.com/verdemed/go-vmp/internal/domain/order"
	"github.com/verdemed/go-vmp/internal/domain/prescription"
	"github.com/verdemed/go-vmp/internal/domain/sample"
	"github.com/verdemed/go-vmp/internal/domain/supplier"
	"github.com/verdemed/go-vmp/internal/domain/ticket"
	"github.com/verdemed/go-vmp/internal/infrastructure/redpanda"
	"github.com/verdemed/go-vmp/internal/observability/metrics"
	"github.com/verdemed/go-vmp/internal/observability/tracing"
	"github.com/verdemed/go-vmp/internal/workflow"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("database ping failed", zap.Error(err))
	}
	logger.Info("connected to database")

	// Tracing
	tracingCfg := tracing.DefaultConfig("admin-api")
	tracingCfg.OTLPEndpoint = cfg.OTLPEndpoint
	provider, err := tracing.Init(context.Background(), tracingCfg)
	if err != nil {
		logger.Warn("tracing init failed, continuing without export", zap.Error(err))
	} else {
		defer provider.Shutdown(context.Background())
	}

	// Ensure event topics exist
	if admin, err := redpanda.NewAdmin(cfg.KafkaBrokers, logger); err == nil {
		if err := admin.EnsureTopics(context.Background()); err != nil {
			logger.Warn("topic creation failed", zap.Error(err))
		}
		admin.Close()
	} else {
		logger.Warn("kafka admin unavailable", zap.Error(err))
	}

	m := metrics.New()

	// Repositories
	ticketRepo := ticket.NewRepository(pool, logger)
	prescriptionRepo := prescription.NewRepository(pool, logger)
	orderRepo := order.NewRepository(pool, logger)
	sampleRepo := sample.NewRepository(pool, logger)
	catalogRepo := catalog.NewRepository(pool, logger)
	supplierRepo := supplier.NewRepository(pool, logger)
	benefitRepo := benefit.NewRepository(pool, logger)

	// One transition executor per workflow kind, all writing status-change
	// events through the outbox.
	ticketExec := workflow.NewExecutor(pool, workflow.KindTicket, ticketRepo, redpanda.TopicStatusChanges, m.StatusTransitions, logger)
	prescriptionExec := workflow.NewExecutor(pool, workflow.KindPrescription, prescriptionRepo, redpanda.TopicStatusChanges, m.StatusTransitions, logger)
	orderExec := workflow.NewExecutor(pool, workflow.KindOrder, orderRepo, redpanda.TopicStatusChanges, m.StatusTransitions, logger)
	sampleExec := workflow.NewExecutor(pool, workflow.KindSample, sampleRepo, redpanda.TopicStatusChanges, m.StatusTransitions, logger)

	reviewer := prescription.NewReviewer(prescriptionRepo, prescriptionExec, m.ReviewsCompleted)

	// Handlers
	ticketHandler := handlers.NewTicketHandler(ticketRepo, ticketExec, logger)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionRepo, reviewer, logger)
	orderHandler := handlers.NewOrderHandler(orderRepo, orderExec, logger)
	sampleHandler := handlers.NewSampleHandler(sampleRepo, sampleExec, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, logger)
	supplierHandler := handlers.NewSupplierHandler(supplierRepo, cfg.UploadDir, logger)
	benefitHandler := handlers.NewBenefitHandler(benefitRepo, logger)
	statusHandler := handlers.NewStatusHandler()

	// Setup router
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m.RequestDuration))
	r.Use(middleware.Tracing("admin-api"))

	// Health checks and metrics (no auth)
	r.Get("/health", healthHandler)
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", metrics.Handler())

	// API routes (with auth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth([]byte(cfg.JWTSecret)))
		r.Mount("/tickets", ticketHandler.Routes())
		r.Mount("/prescriptions", prescriptionHandler.Routes())
		r.Mount("/pharmacist", prescriptionHandler.PharmacistRoutes())
		r.Mount("/orders", orderHandler.Routes())
		r.Mount("/samples", sampleHandler.Routes())
		catalogHandler.Register(r)
		r.Mount("/suppliers", supplierHandler.Routes())
		r.Mount("/partner-benefits", benefitHandler.Routes())
		r.Mount("/statuses", statusHandler.Routes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}()

	logger.Info("starting admin API", zap.String("port", cfg.Port))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}

	logger.Info("server stopped")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","service":"admin-api","version":"0.3.0"}`)
}
