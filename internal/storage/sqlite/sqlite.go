package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/db"
)

// Open opens the SQLite database at cfg.Path and applies the session schema.
func Open(ctx context.Context, cfg config.SQLite, logger *slog.Logger) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// single writer
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	if err := db.MigrateSQL(ctx, goose.DialectSQLite3, sqlDB, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite database: %w", err)
	}

	return sqlDB, nil
}
