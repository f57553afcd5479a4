package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/staff-availability/internal/logging"
)

func serviceLogger(ctx context.Context, fallback *slog.Logger, service string) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = fallback
	}
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("service", service))
}

// ErrorKind classifies err into a stable label for log output.
func ErrorKind(err error) string {
	var validation *ValidationError
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &validation):
		return "validation"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyExists):
		return "conflict"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrAccountDisabled):
		return "account_disabled"
	case errors.Is(err, ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, ErrSessionRevoked):
		return "session_revoked"
	default:
		return "internal"
	}
}
