package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/staff-availability/internal/application"
	"github.com/example/staff-availability/internal/logging"
)

type responder struct {
	logger *slog.Logger
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (r responder) writeJSON(w http.ResponseWriter, req *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.requestLogger(req).ErrorContext(req.Context(), "write response body", slog.String("error", err.Error()))
	}
}

func (r responder) writeError(w http.ResponseWriter, req *http.Request, status int, message string) {
	r.writeJSON(w, req, status, errorResponse{Error: message})
}

func (r responder) handleServiceError(w http.ResponseWriter, req *http.Request, err error) {
	var validation *application.ValidationError
	switch {
	case errors.As(err, &validation):
		r.writeJSON(w, req, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: validation.FieldErrors,
		})
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeError(w, req, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, application.ErrSessionExpired),
		errors.Is(err, application.ErrSessionRevoked),
		errors.Is(err, application.ErrUnauthorized):
		r.writeError(w, req, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, application.ErrAccountDisabled):
		r.writeError(w, req, http.StatusForbidden, "account is disabled")
	case errors.Is(err, application.ErrNotFound):
		r.writeError(w, req, http.StatusNotFound, "resource not found")
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeError(w, req, http.StatusConflict, "resource already exists")
	default:
		r.requestLogger(req).ErrorContext(req.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.String("error_kind", application.ErrorKind(err)))
		r.writeError(w, req, http.StatusInternalServerError, "internal server error")
	}
}

func (r responder) requestLogger(req *http.Request) *slog.Logger {
	if logger := logging.FromContext(req.Context()); logger != nil {
		return logger
	}
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}
