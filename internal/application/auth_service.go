package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/staff-availability/internal/persistence"
)

var (
	// ErrInvalidCredentials indicates the email or password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled indicates the account exists but may not sign in.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrSessionExpired indicates the session token is past its expiry.
	ErrSessionExpired = errors.New("session expired")

	// ErrSessionRevoked indicates the session was explicitly revoked.
	ErrSessionRevoked = errors.New("session revoked")
)

// AccountRepository describes the account lookups the auth service
// depends on.
type AccountRepository interface {
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
	GetAccount(ctx context.Context, id string) (Account, error)
}

// SessionRepository describes session persistence.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSessionByToken(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, id string, revokedAt time.Time) error
}

// AuthService authenticates accounts and validates session tokens.
type AuthService struct {
	accounts       AccountRepository
	sessions       SessionRepository
	idGenerator    func() string
	tokenGenerator func() (string, error)
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(
	accounts AccountRepository,
	sessions SessionRepository,
	idGenerator func() string,
	tokenGenerator func() (string, error),
	now func() time.Time,
	sessionTTL time.Duration,
	logger *slog.Logger,
) (*AuthService, error) {
	if accounts == nil {
		return nil, fmt.Errorf("accounts is nil")
	}
	if sessions == nil {
		return nil, fmt.Errorf("sessions is nil")
	}
	if idGenerator == nil {
		return nil, fmt.Errorf("idGenerator is nil")
	}
	if tokenGenerator == nil {
		return nil, fmt.Errorf("tokenGenerator is nil")
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		return nil, fmt.Errorf("sessionTTL must be positive")
	}
	return &AuthService{
		accounts:       accounts,
		sessions:       sessions,
		idGenerator:    idGenerator,
		tokenGenerator: tokenGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         logger,
	}, nil
}

// Authenticate verifies credentials and issues a new session.
func (s *AuthService) Authenticate(ctx context.Context, params AuthenticateParams) (result AuthenticateResult, err error) {
	if s == nil {
		return AuthenticateResult{}, fmt.Errorf("AuthService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "auth")
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "authentication failed", slog.String("error_kind", ErrorKind(err)))
		}
	}()

	email := strings.TrimSpace(strings.ToLower(params.Email))
	if email == "" || params.Password == "" {
		return AuthenticateResult{}, ErrInvalidCredentials
	}

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return AuthenticateResult{}, ErrInvalidCredentials
		}
		return AuthenticateResult{}, fmt.Errorf("account repository: %w", err)
	}

	ok, err := VerifyPassword(account.PasswordHash, params.Password)
	if err != nil {
		return AuthenticateResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return AuthenticateResult{}, ErrInvalidCredentials
	}
	if account.Disabled {
		return AuthenticateResult{}, ErrAccountDisabled
	}

	token, err := s.tokenGenerator()
	if err != nil {
		return AuthenticateResult{}, fmt.Errorf("generate token: %w", err)
	}
	now := s.now().UTC()
	session := Session{
		ID:        s.idGenerator(),
		AccountID: account.ID,
		Token:     token,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	created, err := s.sessions.CreateSession(ctx, session)
	if err != nil {
		return AuthenticateResult{}, fmt.Errorf("session repository: %w", err)
	}

	logger.InfoContext(ctx, "session issued",
		slog.String("account_id", account.ID),
		slog.Time("expires_at", created.ExpiresAt))
	return AuthenticateResult{Account: account, Session: created}, nil
}

// ValidateSession resolves a bearer token into the acting principal.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (Principal, error) {
	if s == nil {
		return Principal{}, fmt.Errorf("AuthService is nil")
	}
	if strings.TrimSpace(token) == "" {
		return Principal{}, ErrUnauthorized
	}

	session, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Principal{}, ErrUnauthorized
		}
		return Principal{}, fmt.Errorf("session repository: %w", err)
	}
	if session.RevokedAt != nil {
		return Principal{}, ErrSessionRevoked
	}
	if !s.now().UTC().Before(session.ExpiresAt) {
		return Principal{}, ErrSessionExpired
	}

	account, err := s.accounts.GetAccount(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Principal{}, ErrUnauthorized
		}
		return Principal{}, fmt.Errorf("account repository: %w", err)
	}
	if account.Disabled {
		return Principal{}, ErrAccountDisabled
	}

	return Principal{AccountID: account.ID, IsAdmin: account.IsAdmin}, nil
}

// RevokeSession terminates the session behind token.
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "auth")

	session, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("session repository: %w", err)
	}
	if session.RevokedAt != nil {
		return nil
	}
	if err := s.sessions.RevokeSession(ctx, session.ID, s.now().UTC()); err != nil {
		return fmt.Errorf("session repository: %w", err)
	}
	logger.InfoContext(ctx, "session revoked", slog.String("account_id", session.AccountID))
	return nil
}
