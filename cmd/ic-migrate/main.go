package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/log"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running migrate application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Session  config.Session
		Postgres config.Postgres
		SQLite   config.SQLite
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	logger.InfoContext(ctx, "starting session store migration")

	switch cfg.Session.Driver {
	case config.SessionDriverPostgres:
		pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
		if err != nil {
			return fmt.Errorf("error creating pgx pool: %w", err)
		}
		defer pgxPool.Close()

		if err := db.Migrate(ctx, pgxPool, logger); err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}

	case config.SessionDriverSQLite:
		// Open applies pending migrations.
		sqlDB, err := sqlite.Open(ctx, cfg.SQLite, logger)
		if err != nil {
			return fmt.Errorf("error migrating sqlite: %w", err)
		}
		defer sqlDB.Close()

	default:
		logger.InfoContext(ctx, "memory session store has no schema")
		return nil
	}

	logger.InfoContext(ctx, "session store migration completed successfully")

	return nil
}
