package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/repository"
	"github.com/tuanvumaihuynh/inventory-console/internal/session"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/sqlite"
)

// sessionStore is the configured session backend plus what it needs at
// shutdown and for /healthz.
type sessionStore struct {
	session.Store
	health func(ctx context.Context) error
	close  func()
}

func openSessionStore(
	ctx context.Context,
	cfg config.Session,
	pgCfg config.Postgres,
	sqliteCfg config.SQLite,
	logger *slog.Logger,
) (*sessionStore, error) {
	switch cfg.Driver {
	case config.SessionDriverPostgres:
		pgxPool, err := db.NewPgxPool(ctx, pgCfg)
		if err != nil {
			return nil, fmt.Errorf("create pgx pool: %w", err)
		}
		dbClient := db.NewClient(pgxPool)

		return &sessionStore{
			Store:  repository.NewSessionRepository(dbClient),
			health: dbClient.Check,
			close:  pgxPool.Close,
		}, nil

	case config.SessionDriverSQLite:
		sqlDB, err := sqlite.Open(ctx, sqliteCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}

		return &sessionStore{
			Store:  repository.NewSQLiteSessionRepository(sqlDB),
			health: sqlDB.PingContext,
			close: func() {
				if err := sqlDB.Close(); err != nil {
					logger.Error("close sqlite", slog.Any("error", err))
				}
			},
		}, nil

	default:
		return &sessionStore{
			Store: session.NewMemoryStore(),
			close: func() {},
		}, nil
	}
}
