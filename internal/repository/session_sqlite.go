package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tuanvumaihuynh/inventory-console/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

// SQLiteSessionRepository stores sessions in a database/sql SQLite handle.
type SQLiteSessionRepository struct {
	db *sql.DB
}

func NewSQLiteSessionRepository(db *sql.DB) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{db: db}
}

func (r *SQLiteSessionRepository) Get(ctx context.Context, id string) (model.Session, error) {
	s := model.Session{ID: id}
	var role string
	err := r.db.QueryRowContext(ctx,
		"SELECT token, user_role, username FROM sessions WHERE id = ?",
		id,
	).Scan(&s.Token, &role, &s.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, apperr.SessionNotFoundErr
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("get session: %w", err)
	}

	s.Role = model.Role(role)
	return s, nil
}

func (r *SQLiteSessionRepository) Set(ctx context.Context, s model.Session) error {
	return set(ctx, r.db, s)
}

func (r *SQLiteSessionRepository) Replace(ctx context.Context, oldID string, s model.Session) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if oldID != "" {
		if _, err = tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", oldID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}

	if err = set(ctx, tx, s); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepository) Clear(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func set(ctx context.Context, db execer, s model.Session) error {
	now := time.Now().UTC()
	created := s.CreatedAt
	if created.IsZero() {
		created = now
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO sessions (id, token, user_role, username, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			token      = excluded.token,
			user_role  = excluded.user_role,
			username   = excluded.username,
			updated_at = excluded.updated_at
	`, s.ID, s.Token, string(s.Role), s.Username, created, now)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}
