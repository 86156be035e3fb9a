package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

// Manager binds a Store to the browser through a cookie holding the session id.
type Manager struct {
	cfg   config.Session
	store Store
}

func NewManager(cfg config.Session, store Store) *Manager {
	return &Manager{cfg: cfg, store: store}
}

// Load returns the session referenced by the request cookie. ok is false
// when the browser has no cookie or the store no longer knows the id.
func (m *Manager) Load(r *http.Request) (model.Session, bool, error) {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil || c.Value == "" {
		return model.Session{}, false, nil
	}

	s, err := m.store.Get(r.Context(), c.Value)
	if errors.Is(err, ErrNotFound) {
		return model.Session{}, false, nil
	}
	if err != nil {
		return model.Session{}, false, fmt.Errorf("store get session: %w", err)
	}

	return s, s.Authenticated(), nil
}

// Begin persists a new session for a successful login and sets the cookie.
// A session referenced by the request is replaced, never reused.
func (m *Manager) Begin(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	token string,
	role model.Role,
	username string,
) (model.Session, error) {
	s := model.Session{
		ID:        uuid.NewString(),
		Token:     token,
		Role:      role,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	var oldID string
	if c, err := r.Cookie(m.cfg.CookieName); err == nil {
		oldID = c.Value
	}

	if err := m.store.Replace(ctx, oldID, s); err != nil {
		return model.Session{}, fmt.Errorf("store replace session: %w", err)
	}

	http.SetCookie(w, m.cookie(s.ID, 0))
	return s, nil
}

// End clears the stored session and expires the cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, m.cookie("", -1))

	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	if err := m.store.Clear(ctx, c.Value); err != nil {
		return fmt.Errorf("store clear session: %w", err)
	}
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s model.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by NewContext, if any.
func FromContext(ctx context.Context) (model.Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(model.Session)
	return s, ok && s.Authenticated()
}
