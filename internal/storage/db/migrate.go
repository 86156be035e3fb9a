package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tuanvumaihuynh/inventory-console/internal/storage/migrations"
)

// Migrate applies the session store schema to the Postgres database behind pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	return MigrateSQL(ctx, goose.DialectPostgres, sqlDB, logger)
}

// MigrateSQL applies the session store schema using the given goose dialect.
func MigrateSQL(ctx context.Context, dialect goose.Dialect, sqlDB *sql.DB, logger *slog.Logger) error {
	provider, err := goose.NewProvider(dialect, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	for _, res := range results {
		logger.InfoContext(ctx, "applied migration",
			slog.String("source", res.Source.Path),
			slog.Duration("duration", res.Duration),
		)
	}

	return nil
}
