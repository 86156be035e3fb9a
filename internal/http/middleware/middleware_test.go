package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/http/middleware"
	"github.com/tuanvumaihuynh/inventory-console/internal/log"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/internal/session"
	"github.com/tuanvumaihuynh/inventory-console/pkg/correlationid"
)

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	var seen string
	h := middleware.CorrelationID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = correlationid.FromContext(r.Context())
	}))

	t.Run("Should reuse the caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(correlationid.Header, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(correlationid.Header))
	})

	t.Run("Should mint an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(correlationid.Header))
	})
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	h := middleware.Recoverer(log.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSession(t *testing.T) {
	t.Parallel()

	cfg := config.Session{CookieName: "ic_session"}
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), model.Session{
		ID: "s1", Token: "tok", Role: model.RoleAdmin, Username: "admin",
	}))
	m := session.NewManager(cfg, store)

	var (
		got model.Session
		ok  bool
	)
	h := middleware.Session(m, log.Discard())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, ok = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "s1"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, ok)
	assert.Equal(t, "admin", got.Username)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "gone"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, ok)
}
