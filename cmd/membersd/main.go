package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kerhoff/GymMembers/internal/api"
	"github.com/Kerhoff/GymMembers/internal/config"
	"github.com/Kerhoff/GymMembers/internal/repository"
	"github.com/Kerhoff/GymMembers/internal/repository/memory"
	"github.com/Kerhoff/GymMembers/internal/repository/postgres"
	"github.com/Kerhoff/GymMembers/internal/service"
	"github.com/Kerhoff/GymMembers/internal/telegram"
	"github.com/Kerhoff/GymMembers/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting member service...")

	// Storage
	var (
		members repository.MemberRepository
		metrics *api.Metrics
	)
	if cfg.DatabaseURL == "" {
		l.Warn("DATABASE_URL is not set, members are kept in memory and lost on exit")
		members = memory.NewMemberRepository()
		metrics = api.NewMetrics(nil)
	} else {
		db, err := config.NewDatabase(cfg.DatabaseURL, cfg.Pool, l)
		if err != nil {
			l.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if cfg.MigrationsEnabled {
			if err := db.Migrate(); err != nil {
				l.Fatalf("Failed to run migrations: %v", err)
			}
		}

		members = postgres.NewMemberRepository(db.DB)
		metrics = api.NewMetrics(db.DB)
	}

	// Service layer
	var opts []service.Option
	if cfg.Telegram.Enabled() {
		notifier, err := telegram.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, l)
		if err != nil {
			l.Fatalf("Failed to create Telegram notifier: %v", err)
		}
		opts = append(opts, service.WithNotifier(notifier))
	}
	svc := service.New(l, members, opts...)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	// HTTP API
	apiServer := api.NewServer(svc, l, metrics)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: apiServer.Handler(),
	}

	go func() {
		l.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("HTTP server error: %v", err)
			cancel()
		}
	}()

	// Prometheus metrics
	metricsServer := &http.Server{
		Addr:    ":" + cfg.PrometheusPort,
		Handler: metricsMux(metrics),
	}

	go func() {
		l.Infof("Metrics server listening on :%s", cfg.PrometheusPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("Metrics server error: %v", err)
		}
	}()

	l.Info("Member service started successfully")

	<-ctx.Done()

	l.Info("Shutting down HTTP servers...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		l.Errorf("HTTP server shutdown error: %v", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		l.Errorf("Metrics server shutdown error: %v", err)
	}

	l.Info("Member service stopped")
}

func metricsMux(metrics *api.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Handler())
	return mux
}
