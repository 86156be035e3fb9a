package http

import (
	"log/slog"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-console/internal/http/apierr"
	"github.com/tuanvumaihuynh/inventory-console/internal/http/views"
	"github.com/tuanvumaihuynh/inventory-console/internal/nav"
	"github.com/tuanvumaihuynh/inventory-console/internal/session"
)

const (
	authModeLogin    = "login"
	authModeRegister = "register"
)

func (s *Service) redirectHome(w http.ResponseWriter, r *http.Request) {
	s.redirect(w, r, pagePath(nav.DefaultPage))
}

func (s *Service) showAuth(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()); ok {
		s.redirectHome(w, r)
		return
	}

	mode := authModeLogin
	if r.URL.Query().Get("mode") == authModeRegister {
		mode = authModeRegister
	}

	s.renderAuth(w, r, http.StatusOK, mode, popFlash(w, r))
}

func (s *Service) renderAuth(w http.ResponseWriter, r *http.Request, status int, mode string, flash *views.Flash) {
	s.render(w, r, status, views.AuthView, views.Auth{
		AppTitle: s.cfg.Console.Title,
		Mode:     mode,
		Flash:    flash,
	})
}

// authFailed shows err in the auth alert region. The session is untouched.
func (s *Service) authFailed(w http.ResponseWriter, r *http.Request, mode string, err error) {
	res := apierr.New(err)
	s.renderAuth(w, r, res.StatusCode, mode, &views.Flash{Kind: views.FlashError, Message: res.Message})
}

func (s *Service) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := decodeLogin(w, r)
	if err != nil {
		s.authFailed(w, r, authModeLogin, err)
		return
	}

	res, err := s.consoleSvc.Login(ctx, params)
	if err != nil {
		s.authFailed(w, r, authModeLogin, err)
		return
	}

	if _, err := s.sessions.Begin(ctx, w, r, res.Token, res.Role, res.Username); err != nil {
		s.logger.ErrorContext(ctx, "begin session", slog.Any("error", err))
		s.authFailed(w, r, authModeLogin, err)
		return
	}

	s.redirectHome(w, r)
}

func (s *Service) register(w http.ResponseWriter, r *http.Request) {
	params, err := decodeRegister(w, r)
	if err != nil {
		s.authFailed(w, r, authModeRegister, err)
		return
	}

	msg, err := s.consoleSvc.Register(r.Context(), params)
	if err != nil {
		s.authFailed(w, r, authModeRegister, err)
		return
	}

	setFlash(w, views.FlashSuccess, msg)
	s.redirect(w, r, loginPath)
}

func (s *Service) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if sess, ok := session.FromContext(ctx); ok {
		s.consoleSvc.Logout(ctx, sess)
	}

	if err := s.sessions.End(ctx, w, r); err != nil {
		s.logger.WarnContext(ctx, "end session", slog.Any("error", err))
	}

	s.redirect(w, r, loginPath)
}
