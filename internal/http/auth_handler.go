package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/staff-availability/internal/application"
)

// AuthService is the authentication surface the handlers depend on.
type AuthService interface {
	Authenticate(ctx context.Context, params application.AuthenticateParams) (application.AuthenticateResult, error)
	ValidateSession(ctx context.Context, token string) (application.Principal, error)
	RevokeSession(ctx context.Context, token string) error
}

// AuthHandler serves session endpoints.
type AuthHandler struct {
	auth      AuthService
	responder responder
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, responder: responder{logger: logger}}
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   accountResponse `json:"account"`
}

type accountResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

// CreateSession handles POST /sessions.
func (h *AuthHandler) CreateSession(w http.ResponseWriter, req *http.Request) {
	var body createSessionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.responder.writeError(w, req, http.StatusBadRequest, "malformed request body")
		return
	}

	result, err := h.auth.Authenticate(req.Context(), application.AuthenticateParams{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}

	h.responder.writeJSON(w, req, http.StatusCreated, sessionResponse{
		Token:     result.Session.Token,
		ExpiresAt: result.Session.ExpiresAt,
		Account: accountResponse{
			ID:          result.Account.ID,
			Email:       result.Account.Email,
			DisplayName: result.Account.DisplayName,
			IsAdmin:     result.Account.IsAdmin,
		},
	})
}

// DeleteSession handles DELETE /sessions/current.
func (h *AuthHandler) DeleteSession(w http.ResponseWriter, req *http.Request) {
	token := bearerToken(req)
	if token == "" {
		h.responder.writeError(w, req, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.auth.RevokeSession(req.Context(), token); err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	h.responder.writeJSON(w, req, http.StatusNoContent, nil)
}
