// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/config"
	"github.com/resona/resona-api/internal/database"
	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/router"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/tasks"
)

const ledgerProbeInterval = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	setupLogging(cfg)

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.LocalesPath, cfg.I18n.DefaultLocale); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the ledger; reads degrade until it becomes reachable.
	client, err := ledger.NewClient(cfg.Ledger)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create ledger client")
	}
	if err := client.Connect(ctx); err != nil {
		logrus.WithError(err).Warn("Ledger unavailable at startup")
	}
	go client.Watch(ctx, ledgerProbeInterval)

	registry, err := services.NewRegistry(db, cfg, client, cache.New(cfg.Ledger.CacheDuration()))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize services")
	}

	snapshots := tasks.NewSnapshotTask(cfg, registry.Admin)
	if err := snapshots.Start(); err != nil {
		logrus.WithError(err).Fatal("Failed to start snapshot task")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.Initialize(cfg, registry)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snapshots.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	logrus.SetOutput(os.Stdout)

	if cfg.Logging.Format == "json" || (cfg.Logging.Format == "" && cfg.Environment == "production") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logrus.WithField("level", cfg.Logging.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
