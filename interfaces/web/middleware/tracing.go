// Package middleware holds HTTP middleware shared by the web surface.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "toastd"

type tracingConfig struct {
	tracerName string
	provider   trace.TracerProvider
	skip       []string
}

// TracingOption configures the tracing middleware.
type TracingOption func(*tracingConfig)

// WithTracerName sets the instrumentation name of the tracer.
func WithTracerName(name string) TracingOption {
	return func(c *tracingConfig) {
		c.tracerName = name
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *tracingConfig) {
		c.provider = tp
	}
}

// WithSkipPrefixes disables tracing for paths with any of the prefixes.
// Long-lived streams should be skipped.
func WithSkipPrefixes(prefixes ...string) TracingOption {
	return func(c *tracingConfig) {
		c.skip = append(c.skip, prefixes...)
	}
}

// Tracing starts a server span per request. The tracer comes from the
// global OpenTelemetry provider unless one is given; with nothing
// configured the global provider is a no-op.
func Tracing(opts ...TracingOption) func(http.Handler) http.Handler {
	cfg := tracingConfig{tracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}

	var tracer trace.Tracer
	if cfg.provider != nil {
		tracer = cfg.provider.Tracer(cfg.tracerName)
	} else {
		tracer = otel.Tracer(cfg.tracerName)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.skip {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx, span := tracer.Start(r.Context(), fmt.Sprintf("HTTP %s", r.Method),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if rctx := chi.RouteContext(ctx); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					span.SetName(fmt.Sprintf("HTTP %s %s", r.Method, pattern))
					span.SetAttributes(attribute.String("http.route", pattern))
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			} else {
				span.SetStatus(codes.Ok, "")
			}
		})
	}
}
