package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightpath-hq/be-hr-progression/internal/client"
	"github.com/brightpath-hq/be-hr-progression/internal/config"
	"github.com/brightpath-hq/be-hr-progression/internal/database"
	"github.com/brightpath-hq/be-hr-progression/internal/handler"
	"github.com/brightpath-hq/be-hr-progression/internal/logger"
	"github.com/brightpath-hq/be-hr-progression/internal/middleware"
	"github.com/brightpath-hq/be-hr-progression/internal/repository"
	"github.com/brightpath-hq/be-hr-progression/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:       cfg.Service.LogLevel,
		Environment: cfg.Service.Environment,
		ServiceName: cfg.Service.Name,
		Version:     cfg.Service.Version,
	})

	log.Info().
		Str("service", cfg.Service.Name).
		Str("version", cfg.Service.Version).
		Str("environment", cfg.Service.Environment).
		Msg("Starting HR Level Movement Service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := database.New(ctx, database.Config{
		Host:        cfg.Database.Host,
		Port:        cfg.Database.Port,
		User:        cfg.Database.User,
		Password:    cfg.Database.Password,
		Database:    cfg.Database.Database,
		SSLMode:     cfg.Database.SSLMode,
		MaxConns:    cfg.Database.MaxConns,
		MinConns:    cfg.Database.MinConns,
		MaxConnLife: cfg.Database.MaxConnLife,
		MaxIdleTime: cfg.Database.MaxIdleTime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connection established")

	// Initialize repositories
	requestRepo := repository.NewRequestRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	skillsRepo := repository.NewSkillsRepository(db)

	// Notification publisher is optional: no NATS URL, no events.
	var notifier service.Notifier
	if cfg.NATS.URL != "" {
		publisher, err := client.NewNotificationPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to NATS")
		}
		defer publisher.Close()
		notifier = publisher
		log.Info().Str("url", cfg.NATS.URL).Msg("NATS notification publisher initialized")
	}

	// Initialize services
	readinessService := service.NewReadinessService(employeeRepo, skillsRepo, log)
	authorityService := service.NewAuthorityService(employeeRepo, log)
	workflowService := service.NewWorkflowService(requestRepo, employeeRepo, readinessService, authorityService, notifier, log)
	auditService := service.NewAuditService(requestRepo, auditRepo)

	// Setup HTTP routes
	httpHandler := handler.NewHTTPHandler(workflowService, readinessService, authorityService, auditService, log)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	mux.HandleFunc("/api/v1/level-movements", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			httpHandler.InitiateRequest(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/v1/level-movements/get", httpHandler.GetRequest)
	mux.HandleFunc("/api/v1/level-movements/approve", httpHandler.Approve)
	mux.HandleFunc("/api/v1/level-movements/reject", httpHandler.Reject)
	mux.HandleFunc("/api/v1/level-movements/complete", httpHandler.Complete)
	mux.HandleFunc("/api/v1/level-movements/pending", httpHandler.GetPendingRequests)
	mux.HandleFunc("/api/v1/level-movements/history", httpHandler.GetEmployeeHistory)
	mux.HandleFunc("/api/v1/readiness", httpHandler.EvaluateReadiness)
	mux.HandleFunc("/api/v1/authority/can-assess", httpHandler.CanAssess)
	mux.HandleFunc("/api/v1/authority/assessable", httpHandler.GetAssessableEmployees)

	// Apply middleware
	var h http.Handler = mux
	h = middleware.RequestID(h)
	h = middleware.Logger(&log.Logger)(h)
	h = middleware.Recovery(&log.Logger)(h)
	h = middleware.CORS([]string{"*"})(h)
	h = middleware.Timeout(30 * time.Second)(h)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
