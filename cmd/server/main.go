// Command server runs the campaign signup service: the public landing page
// and signup endpoint, the confirmation mailer, and the admin dashboard API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campaign/internal/mailer"
	"campaign/internal/participant/handler"
	"campaign/internal/participant/service"
	"campaign/internal/participant/store"
	"campaign/internal/platform/config"
	"campaign/internal/platform/httpserver"
	"campaign/internal/platform/logger"
	"campaign/internal/platform/metrics"
	"campaign/internal/platform/middleware"
	"campaign/internal/platform/postgres"
	platformredis "campaign/internal/platform/redis"
	"campaign/internal/ratelimit"
	"campaign/internal/web"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Participant store: Postgres when a DSN is provided, in-memory otherwise.
	var participants store.Store
	if cfg.DatabaseURL != "" {
		handle := postgres.NewHandle(cfg.DatabaseURL)
		db, err := handle.Acquire(ctx)
		if err != nil {
			log.Error("postgres unavailable", "error", err.Error())
			os.Exit(1)
		}
		defer handle.Close()
		participants = store.NewPostgres(db)
		log.Info("participant store ready", "backend", "postgres")
	} else {
		participants = store.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory store; data is lost on restart")
	}

	// Confirmation mailer: real SMTP when configured, no-op otherwise.
	var dispatcher service.Mailer
	if cfg.SMTPConfigured() {
		smtp, err := mailer.NewSMTP(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.EmailFrom,
			FromName: cfg.EmailFromName,
		})
		if err != nil {
			log.Error("smtp configuration invalid", "error", err.Error())
			os.Exit(1)
		}
		dispatcher = smtp
		if !cfg.Production {
			// Surface relay misconfiguration at boot instead of on the
			// first signup. Production skips the probe to keep restarts
			// independent of the relay.
			probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := smtp.Verify(probeCtx); err != nil {
				log.Warn("smtp relay unreachable", "error", err.Error())
			} else {
				log.Info("smtp relay verified", "host", cfg.SMTPHost)
			}
			cancel()
		}
	} else {
		dispatcher = mailer.Noop{}
		log.Warn("SMTP not configured, confirmation emails are disabled")
	}

	// Signup rate limiter: Redis-backed sliding window when available so the
	// limit holds across replicas, in-process otherwise.
	var limiterStore ratelimit.Store = ratelimit.NewInMemoryStore()
	if cfg.RedisURL != "" {
		rdb, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("redis unavailable", "error", err.Error())
			os.Exit(1)
		}
		defer rdb.Close()
		limiterStore = ratelimit.NewRedisStore(rdb.Client)
		log.Info("signup rate limiter ready", "backend", "redis")
	}
	signupLimit := ratelimit.Middleware(limiterStore, cfg.SignupRateLimit, cfg.SignupRateWindow, m, log)

	registration := service.NewRegistration(participants, dispatcher, log, m)
	admin := service.NewAdmin(participants, log, m)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.ClientMetadata)
	router.Use(middleware.Logger(log))
	router.Use(middleware.CleanHTMLPath)

	handler.New(registration, admin, log, handler.WithSignupRateLimit(signupLimit)).Register(router)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	web.New(cfg.AdminPanelPath).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("campaign server listening",
			"addr", cfg.Addr,
			"admin_panel", cfg.AdminPanelPath,
			"production", cfg.Production,
		)
		log.Info("routes registered",
			"signup", "POST /participar",
			"list", "GET /api/participants",
			"stats", "GET /api/stats",
			"status", "GET /api/status",
			"delete", "POST /api/participants/delete",
			"export", "GET /api/participants/export",
			"metrics", "GET /metrics",
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
