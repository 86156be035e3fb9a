package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/inventory-console/internal/http/views"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/internal/service"
)

// pageLoader fetches the data region of one page. The returned content is
// always renderable; a fetch failure is carried inside it and also returned
// so the caller can apply the session and cancellation policies.
type pageLoader func(r *http.Request, sess model.Session) (any, error)

func (s *Service) loaders() map[string]pageLoader {
	return map[string]pageLoader{
		"dashboard":     s.loadDashboard,
		"products":      s.loadProducts,
		"transactions":  s.loadTransactions,
		"reports":       s.loadReports,
		"admin-pending": s.loadPending,
		"admin-logs":    s.loadLogs,
	}
}

func (s *Service) showPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "showPage")
	defer span.End()
	r = r.WithContext(ctx)

	pageID := chi.URLParam(r, "pageID")
	page, err := s.pages.Lookup(pageID)
	if err != nil {
		s.renderNotFound(w, r, pageID)
		return
	}

	load, ok := s.loaders()[page.ID]
	if !ok {
		s.renderNotFound(w, r, pageID)
		return
	}

	content, err := load(r, currentSession(r))
	if err != nil {
		if superseded(ctx, err) {
			s.logger.DebugContext(ctx, "navigation superseded, dropping page",
				slog.String("page", page.ID))
			return
		}
		if s.expireIfUnauthorized(w, r, err) {
			return
		}
	}

	s.renderShell(w, r, http.StatusOK, page, page.ID, content)
}

func (s *Service) loadDashboard(r *http.Request, sess model.Session) (any, error) {
	view, err := s.consoleSvc.Dashboard(r.Context(), sess)
	if err != nil {
		return views.Dashboard{}, err
	}

	data := views.Dashboard{Stats: view.Stats}
	top := 0
	for _, c := range view.Categories {
		if c.Quantity > top {
			top = c.Quantity
		}
	}
	for _, c := range view.Categories {
		bar := views.Bar{Category: c.Category, Quantity: c.Quantity}
		if top > 0 && c.Quantity > 0 {
			bar.Percent = c.Quantity * 100 / top
		}
		data.Bars = append(data.Bars, bar)
	}

	var fetchErr error
	if view.StatsErr != nil {
		data.StatsErr = errMessage(view.StatsErr)
		fetchErr = view.StatsErr
	}
	if view.ProductErr != nil {
		data.ProductErr = errMessage(view.ProductErr)
		fetchErr = view.ProductErr
	}
	return data, fetchErr
}

func (s *Service) loadProducts(r *http.Request, sess model.Session) (any, error) {
	query := r.URL.Query().Get("q")
	data := views.Products{DefaultMinStockThreshold: service.DefaultMinStockThreshold}

	view, err := s.consoleSvc.Products(r.Context(), sess, query)
	if err != nil {
		data.View.Query = query
		data.Err = errMessage(err)
		return data, err
	}

	data.View = view
	return data, nil
}

func (s *Service) loadTransactions(r *http.Request, sess model.Session) (any, error) {
	view, err := s.consoleSvc.Transactions(r.Context(), sess)
	if err != nil {
		return views.Transactions{Region: views.Region{Err: errMessage(err)}}, err
	}

	data := views.Transactions{View: view}
	if view.ProductsErr != nil {
		// the selector stays empty; only the history shows an error
		s.logger.WarnContext(r.Context(), "failed to load products for selector",
			slog.Any("error", view.ProductsErr))
	}
	if view.HistoryErr != nil {
		data.Err = errMessage(view.HistoryErr)
		return data, view.HistoryErr
	}
	return data, view.ProductsErr
}

func (s *Service) loadReports(*http.Request, model.Session) (any, error) {
	return views.Reports{}, nil
}

func (s *Service) loadPending(r *http.Request, sess model.Session) (any, error) {
	users, err := s.consoleSvc.PendingUsers(r.Context(), sess)
	if err != nil {
		return views.Pending{Region: views.Region{Err: errMessage(err)}}, err
	}
	return views.Pending{Users: users}, nil
}

func (s *Service) loadLogs(r *http.Request, sess model.Session) (any, error) {
	logs, err := s.consoleSvc.LoginLogs(r.Context(), sess)
	if err != nil {
		return views.Logs{Region: views.Region{Err: errMessage(err)}}, err
	}
	return views.Logs{Logs: logs}, nil
}
