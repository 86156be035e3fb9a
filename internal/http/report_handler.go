package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tuanvumaihuynh/inventory-console/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-console/internal/http/views"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/internal/service"
)

const (
	reportsPage = "reports"
	xlsxMIME    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type exportFunc func(ctx context.Context, sess model.Session) ([]byte, error)

func (s *Service) exportCSV(w http.ResponseWriter, r *http.Request) {
	s.download(w, r, s.consoleSvc.ExportCSV, service.CSVReportName, "text/csv; charset=utf-8")
}

func (s *Service) exportXLSX(w http.ResponseWriter, r *http.Request) {
	s.download(w, r, s.consoleSvc.ExportXLSX, service.XLSXReportName, xlsxMIME)
}

func (s *Service) download(w http.ResponseWriter, r *http.Request, export exportFunc, filename, contentType string) {
	ctx := r.Context()

	data, err := export(ctx, currentSession(r))
	if err != nil {
		if superseded(ctx, err) {
			return
		}
		if s.expireIfUnauthorized(w, r, err) {
			return
		}
		s.logger.WarnContext(ctx, "export report", slog.String("file", filename), slog.Any("error", err))
		setFlash(w, views.FlashError, downloadFailure(err))
		s.redirect(w, r, pagePath(reportsPage))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(data)
}

// downloadFailure tells a backend refusal apart from a failed fetch.
func downloadFailure(err error) string {
	if errors.Is(err, apperr.APIErr) {
		return "Failed to download report"
	}
	return "Error downloading report"
}
