package middleware

import (
	"log/slog"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-console/internal/log"
	"github.com/tuanvumaihuynh/inventory-console/internal/session"
)

// Session loads the browser's session, if any, into the request context.
// A store failure is logged and the request continues signed out.
func Session(m *session.Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok, err := m.Load(r)
			if err != nil {
				logger.WarnContext(r.Context(), "load session", slog.Any("error", err))
			}
			if ok {
				ctx := session.NewContext(r.Context(), s)
				ctx = log.WithUser(ctx, s.Username)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}
