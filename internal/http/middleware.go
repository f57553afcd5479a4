package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/staff-availability/internal/logging"
	"github.com/example/staff-availability/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger attaches a request-scoped logger to the context, logs
// each request on completion and records request metrics.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			requestLogger := logger.With(
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
			)
			ctx := logging.ContextWithLogger(req.Context(), requestLogger)
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, req.WithContext(ctx))

			pattern := req.Pattern
			if pattern == "" {
				pattern = "unmatched"
			}
			metrics.ObserveRequest(req.Method, pattern, recorder.status, start)
			requestLogger.InfoContext(ctx, "request handled",
				slog.Int("status", recorder.status),
				slog.Duration("duration", time.Since(start)))
		})
	}
}

// RequireSession rejects requests without a valid bearer token and
// injects the resolved principal into the request context.
func RequireSession(auth AuthService, responder responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token := bearerToken(req)
			if token == "" {
				responder.writeError(w, req, http.StatusUnauthorized, "authentication required")
				return
			}
			principal, err := auth.ValidateSession(req.Context(), token)
			if err != nil {
				responder.handleServiceError(w, req, err)
				return
			}
			next.ServeHTTP(w, req.WithContext(contextWithPrincipal(req.Context(), principal)))
		})
	}
}

func bearerToken(req *http.Request) string {
	header := req.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
