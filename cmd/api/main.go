// Command api serves the NTDM Animal Hospital HTTP API.
//
//	@title			NTDM Animal Hospital API
//	@version		1.0
//	@description	Session auth, animal registry, consultations and device tracking for the NTDM animal hospital.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/ntdm/animal-hospital/docs"
	"github.com/ntdm/animal-hospital/internal/api"
	"github.com/ntdm/animal-hospital/internal/api/middleware"
	"github.com/ntdm/animal-hospital/internal/core/ports"
	"github.com/ntdm/animal-hospital/internal/core/service"
	"github.com/ntdm/animal-hospital/internal/infrastructure/config"
	mongodb "github.com/ntdm/animal-hospital/internal/infrastructure/db/mongo"
	redisdb "github.com/ntdm/animal-hospital/internal/infrastructure/db/redis"
	"github.com/ntdm/animal-hospital/internal/infrastructure/mail"
	"github.com/ntdm/animal-hospital/internal/infrastructure/queue"
	"github.com/ntdm/animal-hospital/internal/infrastructure/thingspeak"
	"github.com/ntdm/animal-hospital/pkg/logger"
)

const (
	shutdownTimeout   = 15 * time.Second
	thingSpeakTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Level: "info"}).Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "animal-hospital-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	users := mongodb.NewUserRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	animals := mongodb.NewAnimalRepository(db)
	consultations := mongodb.NewConsultationRepository(db)
	messages := mongodb.NewMessageRepository(db)
	contacts := mongodb.NewContactRepository(db)

	if err := mongodb.EnsureIndexes(ctx, users, sessionRepo, animals, consultations, messages, contacts); err != nil {
		return err
	}

	if cfg.BackfillOnStart {
		if _, err := mongodb.NewMigrator(db, service.HashPassword, logger.For("backfill")).Run(ctx); err != nil {
			return err
		}
	}

	rdb := connectRedis(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	var sessions ports.SessionStore = sessionRepo
	var telemetryCache ports.TelemetryCache
	if rdb != nil {
		sessions = redisdb.NewSessionCache(rdb, sessionRepo, logger.For("session_cache"))
		telemetryCache = redisdb.NewTelemetryCache(rdb)
	}

	// --- Notifications ---
	var mailer ports.Mailer = mail.NewNopMailer(logger.For("mailer"))
	if cfg.SMTP.Enabled() {
		smtp, err := mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			FromName: cfg.SMTP.FromName,
		})
		if err != nil {
			return err
		}
		mailer = smtp
	} else {
		log.Warn().Msg("SMTP not configured, emails will be skipped")
	}

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, cfg.Notify.Buffer, mailer, logger.For("dispatcher"))
	dispatcher.Start(dispatcherCtx)
	defer func() {
		stopDispatcher()
		dispatcher.Wait()
	}()

	notifier := service.NewNotificationService(dispatcher, cfg.AppBaseURL, cfg.SMTP.ClinicInbox, logger.For("notifications"))

	// --- Tracking ---
	provider, err := thingspeak.NewClient(cfg.Tracking.BaseURL, cfg.Tracking.APIKey, thingSpeakTimeout)
	if err != nil {
		return err
	}

	// --- Services ---
	e := api.NewRouter(api.Dependencies{
		Auth:          service.NewAuthService(users, sessions, notifier, cfg.Session.TTL, logger.For("auth")),
		Users:         service.NewUserService(users, animals),
		Animals:       service.NewAnimalService(animals, users, logger.For("animals")),
		Tracking:      service.NewTrackingService(animals, provider, telemetryCache, cfg.Tracking.CacheTTL, logger.For("tracking")),
		Consultations: service.NewConsultationService(consultations, users, notifier, logger.For("consultations")),
		Messages:      service.NewMessageService(messages, contacts, users, logger.For("messages")),
		Mongo:         db,
		Redis:         rdb,
		Cookie: middleware.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Production(),
			MaxAge: cfg.Session.TTL,
		},
		Log: logger.For("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// connectRedis returns nil when Redis is disabled or unreachable; the API then
// runs on Mongo alone.
func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) *goredis.Client {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("redis disabled")
		return nil
	}
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, continuing without cache")
		return nil
	}
	return rdb
}
