package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	lghttp "github.com/lexgrid/lexgrid/internal/adapter/http"
	"github.com/lexgrid/lexgrid/internal/adapter/legalapi"
	"github.com/lexgrid/lexgrid/internal/adapter/memory"
	lgnats "github.com/lexgrid/lexgrid/internal/adapter/nats"
	lgotel "github.com/lexgrid/lexgrid/internal/adapter/otel"
	"github.com/lexgrid/lexgrid/internal/adapter/ristretto"
	"github.com/lexgrid/lexgrid/internal/adapter/ws"
	"github.com/lexgrid/lexgrid/internal/config"
	"github.com/lexgrid/lexgrid/internal/domain/routing"
	"github.com/lexgrid/lexgrid/internal/logger"
	"github.com/lexgrid/lexgrid/internal/port/eventbus"
	"github.com/lexgrid/lexgrid/internal/resilience"
	"github.com/lexgrid/lexgrid/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"backend", cfg.Backend.URL,
		"nats", cfg.NATS.URL,
		"log_level", cfg.Logging.Level,
	)

	ctx := context.Background()

	// --- Observability ---
	shutdownOtel, err := lgotel.Setup(ctx, cfg.Otel, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownOtel(shutdownCtx)
	}()

	metrics, err := lgotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Infrastructure ---

	// NATS. The bus is optional: without it the orchestrator still serves
	// every request, only real-time notification is lost.
	var bus eventbus.Bus
	if natsBus, err := lgnats.Connect(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, events disabled", "url", cfg.NATS.URL, "error", err)
	} else {
		bus = natsBus
		defer func() { _ = natsBus.Close() }()
	}

	// Result cache
	resultCache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer resultCache.Close()

	// Analysis backend client, breaker-wrapped
	backend := legalapi.NewClient(cfg.Backend.URL, cfg.Backend.ServiceKey, cfg.Backend.Timeout)
	backend.SetBreaker(resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout))

	// In-memory stores
	agentStore := memory.NewAgentStore()
	taskStore := memory.NewTaskStore()

	// --- Services ---
	hub := ws.NewHub()
	registrySvc := service.NewRegistryService(agentStore)
	taskSvc := service.NewTaskService(taskStore, agentStore, backend, bus, metrics)
	supervisorSvc := service.NewSupervisorService(routing.NewTable(), backend, resultCache, bus, metrics, cfg.Cache.ResultTTL)
	messagingSvc := service.NewMessagingService(bus)

	if err := registrySvc.SeedDefaults(ctx, cfg.Backend.URL); err != nil {
		return fmt.Errorf("seed agents: %w", err)
	}

	// Bridge bus events to websocket clients
	stopBridge := service.NewBridge(bus, hub).Start(ctx)
	defer stopBridge()

	// --- HTTP ---
	handlers := &lghttp.Handlers{
		Registry:   registrySvc,
		Tasks:      taskSvc,
		Supervisor: supervisorSvc,
		Messaging:  messagingSvc,
		Bus:        bus,
		BackendURL: cfg.Backend.URL,
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(lghttp.CORS(cfg.Server.CORSOrigin))
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(lghttp.RequestID)
	r.Use(lghttp.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(3 * time.Minute))
	if cfg.Otel.Enabled {
		r.Use(lgotel.HTTPMiddleware(cfg.Logging.Service))
	}

	r.Get("/health", handlers.Health)
	r.Get("/ws", hub.HandleWS)
	lghttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Orchestrations block on the backend; writes must outlast the
		// 2-minute backend ceiling.
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
