package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/example/staff-availability/internal/persistence"
)

const (
	minWeight     = 1
	maxWeight     = 100
	defaultWeight = 10
)

// StaffRepository describes the persistence operations the staff
// service depends on.
type StaffRepository interface {
	CreateStaff(ctx context.Context, staff Staff) (Staff, error)
	GetStaff(ctx context.Context, id string) (Staff, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]Staff, error)
	UpdateStaff(ctx context.Context, staff Staff) (Staff, error)
	DeleteStaff(ctx context.Context, id string) error
	SetStaffActive(ctx context.Context, id string, active bool) error
}

// StaffService manages the staff directory.
type StaffService struct {
	staffs      StaffRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewStaffService constructs a StaffService.
func NewStaffService(staffs StaffRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) (*StaffService, error) {
	if staffs == nil {
		return nil, fmt.Errorf("staffs is nil")
	}
	if idGenerator == nil {
		return nil, fmt.Errorf("idGenerator is nil")
	}
	if now == nil {
		now = time.Now
	}
	return &StaffService{staffs: staffs, idGenerator: idGenerator, now: now, logger: logger}, nil
}

// CreateStaff validates input strictly and persists a new staff member.
func (s *StaffService) CreateStaff(ctx context.Context, params CreateStaffParams) (Staff, error) {
	if s == nil {
		return Staff{}, fmt.Errorf("StaffService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "staff")
	if !params.Principal.IsAdmin {
		return Staff{}, ErrUnauthorized
	}

	staff, validation := s.buildStaff(params.Input)
	if validation.hasErrors() {
		return Staff{}, validation
	}

	now := s.now().UTC()
	staff.ID = s.idGenerator()
	staff.CreatedAt = now
	staff.UpdatedAt = now

	created, err := s.staffs.CreateStaff(ctx, staff)
	if err != nil {
		return Staff{}, mapStaffRepoError(err)
	}
	logger.InfoContext(ctx, "staff created",
		slog.String("staff_id", created.ID),
		slog.String("timezone", created.Timezone))
	return created, nil
}

// GetStaff returns a single staff member by ID.
func (s *StaffService) GetStaff(ctx context.Context, id string) (Staff, error) {
	if s == nil {
		return Staff{}, fmt.Errorf("StaffService is nil")
	}
	staff, err := s.staffs.GetStaff(ctx, id)
	if err != nil {
		return Staff{}, mapStaffRepoError(err)
	}
	return staff, nil
}

// ListStaff returns the staff directory, active members only unless
// IncludeInactive is set.
func (s *StaffService) ListStaff(ctx context.Context, params ListStaffParams) ([]Staff, error) {
	if s == nil {
		return nil, fmt.Errorf("StaffService is nil")
	}
	staffs, err := s.staffs.ListStaff(ctx, params.IncludeInactive)
	if err != nil {
		return nil, mapStaffRepoError(err)
	}
	return staffs, nil
}

// UpdateStaff validates input strictly and replaces the stored fields
// of an existing staff member.
func (s *StaffService) UpdateStaff(ctx context.Context, params UpdateStaffParams) (Staff, error) {
	if s == nil {
		return Staff{}, fmt.Errorf("StaffService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "staff")
	if !params.Principal.IsAdmin {
		return Staff{}, ErrUnauthorized
	}

	existing, err := s.staffs.GetStaff(ctx, params.StaffID)
	if err != nil {
		return Staff{}, mapStaffRepoError(err)
	}

	staff, validation := s.buildStaff(params.Input)
	if validation.hasErrors() {
		return Staff{}, validation
	}
	staff.ID = existing.ID
	staff.CreatedAt = existing.CreatedAt
	staff.UpdatedAt = s.now().UTC()

	updated, err := s.staffs.UpdateStaff(ctx, staff)
	if err != nil {
		return Staff{}, mapStaffRepoError(err)
	}
	logger.InfoContext(ctx, "staff updated", slog.String("staff_id", updated.ID))
	return updated, nil
}

// DeactivateStaff marks a staff member inactive without deleting its
// shift template or exceptions.
func (s *StaffService) DeactivateStaff(ctx context.Context, principal Principal, id string) error {
	if s == nil {
		return fmt.Errorf("StaffService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "staff")
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if err := s.staffs.SetStaffActive(ctx, id, false); err != nil {
		return mapStaffRepoError(err)
	}
	logger.InfoContext(ctx, "staff deactivated", slog.String("staff_id", id))
	return nil
}

// DeleteStaff removes a staff member together with its shift template
// and exceptions.
func (s *StaffService) DeleteStaff(ctx context.Context, principal Principal, id string) error {
	if s == nil {
		return fmt.Errorf("StaffService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "staff")
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if err := s.staffs.DeleteStaff(ctx, id); err != nil {
		return mapStaffRepoError(err)
	}
	logger.InfoContext(ctx, "staff deleted", slog.String("staff_id", id))
	return nil
}

func (s *StaffService) buildStaff(input StaffInput) (Staff, *ValidationError) {
	validation := newValidationError()

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		validation.add("display_name", "display name is required")
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		validation.add("email", "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		validation.add("email", "email is invalid")
	}

	phone := normalizePhone(input.Phone)
	if input.Phone != "" && phone == "" {
		validation.add("phone", "phone is invalid")
	}

	timezone := strings.TrimSpace(input.Timezone)
	if timezone == "" {
		timezone = DefaultTimezone
	} else if _, err := time.LoadLocation(timezone); err != nil {
		validation.add("timezone", "timezone is not a valid IANA identifier")
	}

	if validation.hasErrors() {
		return Staff{}, validation
	}

	return Staff{
		DisplayName: displayName,
		Email:       email,
		Phone:       phone,
		Timezone:    timezone,
		Skills:      ParseSkills(input.Skills),
		Weight:      ClampWeight(input.Weight),
		CooldownSec: max(0, input.CooldownSec),
		Active:      input.Active,
	}, validation
}

var phoneDigits = regexp.MustCompile(`[^0-9+]`)

func normalizePhone(raw string) string {
	cleaned := phoneDigits.ReplaceAllString(strings.TrimSpace(raw), "")
	digits := strings.TrimPrefix(cleaned, "+")
	if len(digits) < 7 {
		return ""
	}
	return cleaned
}

// ClampWeight forces weight into the accepted range, substituting the
// default for the zero value.
func ClampWeight(weight int) int {
	if weight == 0 {
		return defaultWeight
	}
	if weight < minWeight {
		return minWeight
	}
	if weight > maxWeight {
		return maxWeight
	}
	return weight
}

// ParseSkills parses the comma-separated "Label" or "Label:Level" skill
// form. Blank entries are dropped, levels are lowercased, slugs are
// derived from the label.
func ParseSkills(raw string) []Skill {
	var skills []Skill
	for _, part := range strings.Split(raw, ",") {
		entry := strings.TrimSpace(part)
		if entry == "" {
			continue
		}
		label := entry
		level := ""
		if before, after, found := strings.Cut(entry, ":"); found {
			label = strings.TrimSpace(before)
			level = strings.ToLower(strings.TrimSpace(after))
		}
		if label == "" {
			continue
		}
		skills = append(skills, Skill{Label: label, Slug: slugify(label), Level: level})
	}
	return skills
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(label string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(label), "-")
	return strings.Trim(slug, "-")
}

// StaffFromStorage coerces an already persisted row into a usable
// Staff value instead of rejecting it. Out-of-range weights are
// clamped and unknown timezones fall back to DefaultTimezone so that
// historical rows keep resolving.
func StaffFromStorage(staff Staff) Staff {
	staff.Weight = ClampWeight(staff.Weight)
	if staff.CooldownSec < 0 {
		staff.CooldownSec = 0
	}
	if staff.Timezone == "" {
		staff.Timezone = DefaultTimezone
	} else if _, err := time.LoadLocation(staff.Timezone); err != nil {
		staff.Timezone = DefaultTimezone
	}
	return staff
}

func mapStaffRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	default:
		return fmt.Errorf("staff repository: %w", err)
	}
}
