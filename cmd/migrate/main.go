package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logger"
	"storefront/internal/migrate"
)

func main() {
	var down, version bool
	flag.BoolVar(&down, "down", false, "Roll back the most recent migration")
	flag.BoolVar(&version, "version", false, "Print the applied schema version and exit")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{ServiceName: "migrate", Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.DBConnString == "" {
		log.Fatal().Msg("DB_DSN required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	switch {
	case version:
		v, dirty, err := migrate.Version(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("read version")
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("schema version")
	case down:
		if err := migrate.Rollback(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("roll back migration")
		}
		log.Info().Msg("rolled back one migration")
	default:
		if err := migrate.Apply(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("apply migrations")
		}
		log.Info().Msg("migrations applied")
	}
}
