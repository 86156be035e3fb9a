package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/inventory-console/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/db"
)

type SessionRepository interface {
	WithDB(db db.DB) SessionRepository
	Get(ctx context.Context, id string) (model.Session, error)
	Set(ctx context.Context, s model.Session) error
	Replace(ctx context.Context, oldID string, s model.Session) error
	Clear(ctx context.Context, id string) error
}

type sessionRepository struct {
	db db.DB
}

// NewSessionRepository creates a Postgres backed session repository.
func NewSessionRepository(db db.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r sessionRepository) WithDB(db db.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r sessionRepository) Get(ctx context.Context, id string) (model.Session, error) {
	s := model.Session{ID: id}
	var role string
	err := r.db.QueryRow(ctx, `
		SELECT token, user_role, username, created_at
		FROM sessions
		WHERE id = $1
	`, id).Scan(&s.Token, &role, &s.Username, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Session{}, apperr.SessionNotFoundErr
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("get session: %w", err)
	}

	s.Role = model.Role(role)
	return s, nil
}

func (r sessionRepository) Set(ctx context.Context, s model.Session) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (id, token, user_role, username, created_at, updated_at)
		VALUES (@id, @token, @user_role, @username, @created_at, @updated_at)
		ON CONFLICT (id) DO UPDATE SET
			token      = EXCLUDED.token,
			user_role  = EXCLUDED.user_role,
			username   = EXCLUDED.username,
			updated_at = EXCLUDED.updated_at
	`, pgx.NamedArgs{
		"id":         s.ID,
		"token":      s.Token,
		"user_role":  string(s.Role),
		"username":   s.Username,
		"created_at": s.CreatedAt,
		"updated_at": time.Now(),
	})
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

func (r sessionRepository) Replace(ctx context.Context, oldID string, s model.Session) error {
	if err := r.db.WithTx(ctx, func(db db.DB) error {
		repo := r.WithDB(db)
		if oldID != "" {
			if err := repo.Clear(ctx, oldID); err != nil {
				return err
			}
		}
		return repo.Set(ctx, s)
	}); err != nil {
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}

func (r sessionRepository) Clear(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
