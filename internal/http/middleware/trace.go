package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.9.0"
	"go.opentelemetry.io/otel/trace"
)

// Trace starts a server span per browser request. Backend calls made while
// rendering become its children.
func Trace(tracer trace.Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if untraced(r) {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			// named after routing, once chi knows the pattern
			ctx, span := tracer.Start(ctx, r.Method, trace.WithAttributes(
				semconv.HTTPTargetKey.String(r.URL.Path),
				semconv.HTTPMethodKey.String(r.Method),
			), trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			r = r.WithContext(ctx)
			next.ServeHTTP(ww, r)

			rctx := chi.RouteContext(ctx)
			pattern := rctx.RoutePattern()
			if pattern == "" {
				pattern = "<unmatched>"
			}
			span.SetName(fmt.Sprintf("%s %s", r.Method, pattern))
			span.SetAttributes(semconv.HTTPRouteKey.String(pattern))
			if pageID := rctx.URLParam("pageID"); pageID != "" {
				span.SetAttributes(attribute.String("console.page", pageID))
			}

			status := ww.Status()
			span.SetAttributes(semconv.HTTPStatusCodeKey.Int(status))
			// 4xx are user outcomes (bad login, unknown page), not faults.
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, fmt.Sprintf("error with HTTP status code %d", status))
			}
		})
	}
}

func untraced(r *http.Request) bool {
	switch r.URL.Path {
	case MetricsPath, "/healthz":
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/docs")
}
