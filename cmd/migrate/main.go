package main

import (
	"context"
	"flag"

	"github.com/lupashe/backoffice/internal/infrastructure/db/postgres"
	"github.com/lupashe/backoffice/internal/pkg/config"
	"github.com/lupashe/backoffice/migrations"
	"github.com/lupashe/backoffice/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction(), Service: "backoffice-migrate"})

	dsn := flag.String("dsn", cfg.Postgres.URL, "postgres connection string")
	flag.Parse()

	// Default to 'up' if no command is provided.
	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command, args := arguments[0], arguments[1:]

	db, err := postgres.Connect(ctx, postgres.Config{URL: *dsn})
	if err != nil {
		log.Fatal().Err(err).Msg("goose: failed to connect to DB")
	}
	defer db.Close()

	if err := migrations.Run(ctx, db, command, args...); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migration failed")
	}

	log.Info().Str("command", command).Msg("goose success")
}
