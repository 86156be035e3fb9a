package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/inventory-console/internal/apiclient"
	"github.com/tuanvumaihuynh/inventory-console/internal/http/apierr"
	"github.com/tuanvumaihuynh/inventory-console/internal/http/views"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/internal/nav"
	"github.com/tuanvumaihuynh/inventory-console/internal/session"
)

const (
	loginPath    = "/login"
	notFoundView = "not-found"
	confirmView  = "confirm"
)

func pagePath(pageID string) string {
	return "/pages/" + pageID
}

// errMessage is the user facing text of err. Unknown errors are not leaked.
func errMessage(err error) string {
	return apierr.New(err).Message
}

// superseded reports whether the browser abandoned the request, in which
// case fetched data is discarded.
func superseded(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, context.Canceled)
}

func (s *Service) redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (s *Service) render(w http.ResponseWriter, r *http.Request, status int, view string, data any) {
	if err := s.views.Render(w, status, view, data); err != nil {
		s.logger.ErrorContext(r.Context(), "render view",
			slog.String("view", view),
			slog.Any("error", err),
		)
		http.Error(w, apierr.InternalServerErr.Message, http.StatusInternalServerError)
	}
}

// renderShell renders a signed-in page inside the navigation shell.
func (s *Service) renderShell(w http.ResponseWriter, r *http.Request, status int, page nav.Page, view string, content any) {
	sess, _ := session.FromContext(r.Context())

	badge := views.Badge{Username: sess.Username, Role: sess.Role}
	if exp, ok := session.TokenExpiry(sess.Token); ok {
		badge.ExpiresAt = exp.UTC().Format(s.cfg.Console.TimeFormat)
	}

	s.render(w, r, status, view, views.Shell{
		AppTitle: s.cfg.Console.Title,
		Page:     page,
		Nav:      s.pages.Navigation(page.ID, sess.Role),
		User:     badge,
		IsAdmin:  sess.IsAdmin(),
		Flash:    popFlash(w, r),
		Content:  content,
	})
}

func (s *Service) renderNotFound(w http.ResponseWriter, r *http.Request, pageID string) {
	s.renderShell(w, r, http.StatusNotFound,
		nav.Page{ID: pageID, Title: "Page Not Found"},
		notFoundView,
		views.NotFound{PageID: pageID},
	)
}

func (s *Service) notFound(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()); !ok {
		http.NotFound(w, r)
		return
	}
	s.renderNotFound(w, r, r.URL.Path)
}

// renderConfirm asks the user before a POST to action. pageID is the page
// the confirmation belongs to.
func (s *Service) renderConfirm(w http.ResponseWriter, r *http.Request, pageID string, confirm views.Confirm) {
	page, err := s.pages.Lookup(pageID)
	if err != nil {
		s.renderNotFound(w, r, pageID)
		return
	}
	confirm.CancelURL = pagePath(pageID)
	s.renderShell(w, r, http.StatusOK, page, confirmView, confirm)
}

// expireIfUnauthorized ends the session when the backend rejected its token
// and the console is configured to sign out on 401. It reports whether a
// response was written.
func (s *Service) expireIfUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !s.cfg.Session.LogoutOnUnauthorized || !apiclient.IsUnauthorized(err) {
		return false
	}

	if endErr := s.sessions.End(r.Context(), w, r); endErr != nil {
		s.logger.WarnContext(r.Context(), "end expired session", slog.Any("error", endErr))
	}
	setFlash(w, views.FlashError, "Your session has expired. Please log in again.")
	s.redirect(w, r, loginPath)
	return true
}

func (s *Service) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			s.redirect(w, r, loginPath)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentSession(r *http.Request) model.Session {
	sess, _ := session.FromContext(r.Context())
	return sess
}

func idParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}
