package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/staff-availability/internal/application"
	"github.com/example/staff-availability/internal/config"
	httpapi "github.com/example/staff-availability/internal/http"
	"github.com/example/staff-availability/internal/metrics"
	"github.com/example/staff-availability/internal/persistence"
	"github.com/example/staff-availability/internal/persistence/sqlite"
)

const sessionCleanupInterval = time.Hour

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(ctx, cfg.SQLiteDSN)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := sqlite.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	staffRepo := &staffRepositoryAdapter{repo: sqlite.NewStaffRepository(db)}
	hoursRepo := &hoursRepositoryAdapter{repo: sqlite.NewWeeklyHoursRepository(db)}
	exceptionRepo := &exceptionRepositoryAdapter{repo: sqlite.NewExceptionRepository(db)}
	accountStore := sqlite.NewAccountRepository(db)
	accountRepo := &accountRepositoryAdapter{repo: accountStore}
	sessionStore := sqlite.NewSessionRepository(db)
	sessionRepo := &sessionRepositoryAdapter{repo: sessionStore}

	staffService, err := application.NewStaffService(staffRepo, uuid.NewString, time.Now, logger)
	if err != nil {
		return fmt.Errorf("build staff service: %w", err)
	}
	scheduleService, err := application.NewScheduleService(
		staffRepo, hoursRepo, exceptionRepo,
		cfg.DefaultTimezone, uuid.NewString, time.Now, logger)
	if err != nil {
		return fmt.Errorf("build schedule service: %w", err)
	}
	authService, err := application.NewAuthService(
		accountRepo, sessionRepo,
		uuid.NewString, newSessionToken, time.Now, cfg.SessionTTL, logger)
	if err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}

	if err := ensureAdminAccount(ctx, accountStore, logger); err != nil {
		return err
	}

	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:     httpapi.NewAuthHandler(authService, logger),
		Staff:    httpapi.NewStaffHandler(staffService, logger),
		Schedule: httpapi.NewScheduleHandler(scheduleService, logger),
	}, authService, logger)

	metrics.StartServer(cfg.MetricsAddr, logger)
	go cleanupSessions(ctx, sessionStore, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newSessionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// ensureAdminAccount bootstraps the first administrative account from
// STAFFD_ADMIN_EMAIL and STAFFD_ADMIN_PASSWORD when the account does
// not exist yet. Without those variables the step is skipped.
func ensureAdminAccount(ctx context.Context, accounts persistence.AccountRepository, logger *slog.Logger) error {
	email := strings.TrimSpace(strings.ToLower(os.Getenv("STAFFD_ADMIN_EMAIL")))
	password := os.Getenv("STAFFD_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	if _, err := accounts.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return fmt.Errorf("look up admin account: %w", err)
	}

	hash, err := application.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	now := time.Now().UTC()
	record := persistence.AccountRecord{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  "Administrator",
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := accounts.Create(ctx, record); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	logger.Info("admin account created", slog.String("email", email))
	return nil
}

func cleanupSessions(ctx context.Context, sessions persistence.SessionRepository, logger *slog.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := sessions.DeleteExpired(ctx, time.Now().UTC())
			if err != nil {
				logger.Warn("session cleanup failed", slog.String("error", err.Error()))
				continue
			}
			if deleted > 0 {
				logger.Info("expired sessions removed", slog.Int64("count", deleted))
			}
		}
	}
}
