package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/http/metric"
	"github.com/tuanvumaihuynh/inventory-console/internal/http/middleware"
	"github.com/tuanvumaihuynh/inventory-console/internal/http/swagger"
	"github.com/tuanvumaihuynh/inventory-console/internal/http/views"
	"github.com/tuanvumaihuynh/inventory-console/internal/nav"
	"github.com/tuanvumaihuynh/inventory-console/internal/service"
	"github.com/tuanvumaihuynh/inventory-console/internal/session"
)

var tracer = otel.Tracer("internal/http")

// HealthCheck reports whether a dependency of the console is usable.
type HealthCheck func(ctx context.Context) error

type Config struct {
	HTTP    config.HTTP
	Console config.Console
	Session config.Session
}

// Service represents the HTTP service.
type Service struct {
	cfg      Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metric.Metrics

	consoleSvc service.Service
	sessions   *session.Manager
	pages      *nav.Registry
	views      *views.Renderer
	health     map[string]HealthCheck
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg Config,
	log *slog.Logger,
	consoleSvc service.Service,
	sessions *session.Manager,
) (*Service, error) {
	renderer, err := views.New(cfg.Console)
	if err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Service{
		cfg:        cfg,
		logger:     log.With(slog.String("service", "http")),
		registry:   registry,
		metrics:    metric.New(registry),
		consoleSvc: consoleSvc,
		sessions:   sessions,
		pages:      nav.Default(),
		views:      renderer,
		health:     make(map[string]HealthCheck),
	}, nil
}

// AddHealthCheck registers a dependency checked by /healthz.
func (s *Service) AddHealthCheck(name string, check HealthCheck) {
	s.health[name] = check
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Router())
}

// Router builds the console's routes and middleware chain.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.HTTP.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)
	return r
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.HTTP.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.HTTP.AllowedOrigins),
		middleware.Session(s.sessions, s.logger),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	r.Get("/login", s.showAuth)
	r.Post("/login", s.login)
	r.Post("/register", s.register)
	r.Post("/logout", s.logout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/", s.redirectHome)
		r.Get("/pages/{pageID}", s.showPage)

		r.Post("/products", s.addProduct)
		r.Get("/products/{id}/delete", s.confirmDeleteProduct)
		r.Post("/products/{id}/delete", s.deleteProduct)

		r.Post("/transactions", s.recordTransaction)

		r.Get("/reports/export/csv", s.exportCSV)
		r.Get("/reports/export/xlsx", s.exportXLSX)

		r.Get("/admin/users/{id}/approve", s.confirmApproveUser)
		r.Post("/admin/users/{id}/approve", s.approveUser)
		r.Get("/admin/users/{id}/reject", s.confirmRejectUser)
		r.Post("/admin/users/{id}/reject", s.rejectUser)
	})

	r.NotFound(s.notFound)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for name, check := range s.health {
		if err := check(ctx); err != nil {
			s.logger.ErrorContext(ctx, "health check failed",
				slog.String("check", name),
				slog.Any("error", err),
			)
			http.Error(w, name+" unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write([]byte("ok"))
}
