package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/rental-ledger-backend/internal/app"
	"github.com/nekogravitycat/rental-ledger-backend/internal/config"
	"github.com/nekogravitycat/rental-ledger-backend/internal/db"
	"github.com/nekogravitycat/rental-ledger-backend/internal/journal"
	"github.com/nekogravitycat/rental-ledger-backend/internal/pkg/logger"
	"github.com/nekogravitycat/rental-ledger-backend/internal/report"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	zapLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = zapLogger.Sync() }()

	// Connect DB when a journal database is configured
	var pool *pgxpool.Pool
	if cfg.DBDSN != "" {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			zapLogger.Fatal("failed to connect to db", zap.Error(err))
		}
		defer pool.Close()

		if err := journal.EnsureSchema(ctx, pool); err != nil {
			zapLogger.Fatal("failed to prepare journal table", zap.Error(err))
		}
		zapLogger.Info("journal stored in postgres")
	}

	container := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		DBPool:       pool,
		Logger:       zapLogger,
	})

	if cfg.SeedDemo {
		seeded, err := app.SeedDemo(ctx, container.Resources)
		if err != nil {
			zapLogger.Fatal("failed to seed demo equipment", zap.Error(err))
		}
		zapLogger.Info("demo equipment seeded", zap.Int("count", len(seeded)))
	}

	// Periodic occupancy report
	if cfg.ReportCron != "" {
		scheduler, err := report.NewScheduler(container.Report, cfg.ReportCron, logger.Named(zapLogger, "report"))
		if err != nil {
			zapLogger.Fatal("failed to create report scheduler", zap.Error(err))
		}
		if err := scheduler.Start(); err != nil {
			zapLogger.Fatal("failed to start report scheduler", zap.Error(err))
		}
		defer scheduler.Stop()
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		zapLogger.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zapLogger.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Warn("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited gracefully")
}
