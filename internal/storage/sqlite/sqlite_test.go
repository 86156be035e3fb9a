package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/log"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/internal/repository"
	"github.com/tuanvumaihuynh/inventory-console/internal/session"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/sqlite"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	cfg := config.SQLite{Path: filepath.Join(t.TempDir(), "console.db")}

	sqlDB, err := sqlite.Open(ctx, cfg, log.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	repo := repository.NewSQLiteSessionRepository(sqlDB)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	s := model.Session{ID: "one", Token: "tok", Role: model.RoleAdmin, Username: "admin"}
	require.NoError(t, repo.Set(ctx, s))

	got, err := repo.Get(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.Equal(t, "admin", got.Username)

	require.NoError(t, repo.Replace(ctx, "one", model.Session{ID: "two", Token: "tok2", Role: model.RoleEmployee, Username: "bob"}))
	_, err = repo.Get(ctx, "one")
	assert.ErrorIs(t, err, session.ErrNotFound)

	got, err = repo.Get(ctx, "two")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)

	require.NoError(t, repo.Clear(ctx, "two"))
	_, err = repo.Get(ctx, "two")
	assert.ErrorIs(t, err, session.ErrNotFound)

	// Reopening applies no migration twice.
	again, err := sqlite.Open(ctx, cfg, log.Discard())
	require.NoError(t, err)
	again.Close()
}
