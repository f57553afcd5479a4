package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/staff-availability/internal/application"
)

// StaffService is the staff directory surface the handlers depend on.
type StaffService interface {
	CreateStaff(ctx context.Context, params application.CreateStaffParams) (application.Staff, error)
	GetStaff(ctx context.Context, id string) (application.Staff, error)
	ListStaff(ctx context.Context, params application.ListStaffParams) ([]application.Staff, error)
	UpdateStaff(ctx context.Context, params application.UpdateStaffParams) (application.Staff, error)
	DeactivateStaff(ctx context.Context, principal application.Principal, id string) error
	DeleteStaff(ctx context.Context, principal application.Principal, id string) error
}

// StaffHandler serves staff directory endpoints.
type StaffHandler struct {
	staff     StaffService
	responder responder
}

// NewStaffHandler constructs a StaffHandler.
func NewStaffHandler(staff StaffService, logger *slog.Logger) *StaffHandler {
	return &StaffHandler{staff: staff, responder: responder{logger: logger}}
}

type staffRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Timezone    string `json:"timezone"`
	Skills      string `json:"skills"`
	Weight      int    `json:"weight"`
	CooldownSec int    `json:"cooldown_sec"`
	Active      *bool  `json:"active"`
}

type skillResponse struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
	Level string `json:"level,omitempty"`
}

type staffResponse struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone,omitempty"`
	Timezone    string          `json:"timezone"`
	Skills      []skillResponse `json:"skills"`
	Weight      int             `json:"weight"`
	CooldownSec int             `json:"cooldown_sec"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toStaffResponse(staff application.Staff) staffResponse {
	skills := make([]skillResponse, 0, len(staff.Skills))
	for _, skill := range staff.Skills {
		skills = append(skills, skillResponse{Label: skill.Label, Slug: skill.Slug, Level: skill.Level})
	}
	return staffResponse{
		ID:          staff.ID,
		DisplayName: staff.DisplayName,
		Email:       staff.Email,
		Phone:       staff.Phone,
		Timezone:    staff.Timezone,
		Skills:      skills,
		Weight:      staff.Weight,
		CooldownSec: staff.CooldownSec,
		Active:      staff.Active,
		CreatedAt:   staff.CreatedAt,
		UpdatedAt:   staff.UpdatedAt,
	}
}

func (r staffRequest) toInput() application.StaffInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return application.StaffInput{
		DisplayName: r.DisplayName,
		Email:       r.Email,
		Phone:       r.Phone,
		Timezone:    r.Timezone,
		Skills:      r.Skills,
		Weight:      r.Weight,
		CooldownSec: r.CooldownSec,
		Active:      active,
	}
}

// List handles GET /staff.
func (h *StaffHandler) List(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFromContext(req.Context())
	includeInactive := req.URL.Query().Get("include_inactive") == "true"

	staffs, err := h.staff.ListStaff(req.Context(), application.ListStaffParams{
		Principal:       principal,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	payload := make([]staffResponse, 0, len(staffs))
	for _, staff := range staffs {
		payload = append(payload, toStaffResponse(staff))
	}
	h.responder.writeJSON(w, req, http.StatusOK, payload)
}

// Create handles POST /staff.
func (h *StaffHandler) Create(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFromContext(req.Context())
	var body staffRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.responder.writeError(w, req, http.StatusBadRequest, "malformed request body")
		return
	}

	staff, err := h.staff.CreateStaff(req.Context(), application.CreateStaffParams{
		Principal: principal,
		Input:     body.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	h.responder.writeJSON(w, req, http.StatusCreated, toStaffResponse(staff))
}

// Get handles GET /staff/{id}.
func (h *StaffHandler) Get(w http.ResponseWriter, req *http.Request) {
	staff, err := h.staff.GetStaff(req.Context(), req.PathValue("id"))
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	h.responder.writeJSON(w, req, http.StatusOK, toStaffResponse(staff))
}

// Update handles PUT /staff/{id}.
func (h *StaffHandler) Update(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFromContext(req.Context())
	var body staffRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.responder.writeError(w, req, http.StatusBadRequest, "malformed request body")
		return
	}

	staff, err := h.staff.UpdateStaff(req.Context(), application.UpdateStaffParams{
		Principal: principal,
		StaffID:   req.PathValue("id"),
		Input:     body.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	h.responder.writeJSON(w, req, http.StatusOK, toStaffResponse(staff))
}

// Deactivate handles POST /staff/{id}/deactivate.
func (h *StaffHandler) Deactivate(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFromContext(req.Context())
	if err := h.staff.DeactivateStaff(req.Context(), principal, req.PathValue("id")); err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	h.responder.writeJSON(w, req, http.StatusNoContent, nil)
}

// Delete handles DELETE /staff/{id}.
func (h *StaffHandler) Delete(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFromContext(req.Context())
	if err := h.staff.DeleteStaff(req.Context(), principal, req.PathValue("id")); err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	h.responder.writeJSON(w, req, http.StatusNoContent, nil)
}
