// Command backfill rewrites legacy records into the current shape: canonical
// animal owners, lower-case consultation statuses, hashed passwords and
// lower-case account emails.
// It is safe to run more than once.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ntdm/animal-hospital/internal/core/service"
	"github.com/ntdm/animal-hospital/internal/infrastructure/config"
	mongodb "github.com/ntdm/animal-hospital/internal/infrastructure/db/mongo"
	"github.com/ntdm/animal-hospital/pkg/logger"
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
		Service: "animal-hospital-backfill",
		Env:     cfg.Env,
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	report, err := mongodb.NewMigrator(db, service.HashPassword, log).Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("backfill failed")
		_ = client.Disconnect(context.Background())
		os.Exit(1)
	}
	if report.Unresolved > 0 {
		log.Warn().Int("unresolved", report.Unresolved).Msg("some records need manual review")
	}
}
