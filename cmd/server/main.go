// Command server runs the veterinary clinic backend: the appointment API,
// the in-app notification feed, and the resident reminder dispatch workers.
//
// Startup order:
//  1. Load .env (best-effort) and environment configuration
//  2. Configure logging and OpenTelemetry tracing
//  3. Open SQLite, migrate the schema
//  4. Restore the in-app feed snapshot
//  5. Register routes, start dispatch workers, serve HTTP
//
// Shutdown is graceful: SIGINT/SIGTERM stops the workers, drains in-flight
// requests, and flushes the trace exporter.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "github.com/pawdesk/go-vet-backend/docs" // swagger spec, generated by swag
	"github.com/pawdesk/go-vet-backend/internal/config"
	"github.com/pawdesk/go-vet-backend/internal/feed"
	httpapi "github.com/pawdesk/go-vet-backend/internal/http"
	"github.com/pawdesk/go-vet-backend/internal/notify"
	"github.com/pawdesk/go-vet-backend/internal/observability"
	"github.com/pawdesk/go-vet-backend/internal/repo"
	"github.com/pawdesk/go-vet-backend/internal/services"
	"github.com/pawdesk/go-vet-backend/internal/sysutil"
	"github.com/pawdesk/go-vet-backend/internal/worker"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("database open failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	fd := feed.New(cfg.FeedPath)
	if err := fd.EnsureDir(); err != nil {
		log.Fatal().Err(err).Str("path", cfg.FeedPath).Msg("feed directory setup failed")
	}
	if err := fd.Load(); err != nil {
		log.Fatal().Err(err).Str("path", cfg.FeedPath).Msg("feed snapshot load failed")
	}

	// External collaborators: fall back to local no-ops when unconfigured.
	var email notify.EmailSender = notify.NopEmailSender{}
	if cfg.Collaborators.EmailEndpoint != "" {
		email = notify.NewHTTPEmailSender(cfg.Collaborators.EmailEndpoint, cfg.Collaborators.EmailAPIKey)
	}
	var personalizer notify.Personalizer = notify.StaticPersonalizer{}
	if cfg.Collaborators.AIEndpoint != "" {
		personalizer = notify.NewHTTPPersonalizer(cfg.Collaborators.AIEndpoint, cfg.Collaborators.AIAPIKey)
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:           db,
		Feed:         fd,
		Email:        email,
		Personalizer: personalizer,
	}, cfg)

	// Resident dispatch workers, one per configured tenant.
	dispatch := &services.DispatchService{
		DB:           db,
		Feed:         fd,
		Email:        email,
		Personalizer: personalizer,
		FetchWindow:  cfg.Reminders.Window,
	}
	var wg sync.WaitGroup
	for _, tenantID := range cfg.Reminders.Tenants {
		w := &worker.ReminderWorker{
			Dispatcher: dispatch,
			TenantID:   tenantID,
			AsUserID:   cfg.Reminders.AsUser,
			Interval:   cfg.Reminders.Interval,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Start(ctx)
		}()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	wg.Wait()
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("bye")
	_ = os.Stdout.Sync()
}
