package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/staff-availability/internal/interval"
	"github.com/example/staff-availability/internal/persistence"
	"github.com/example/staff-availability/internal/timeutil"
)

// StaffDirectory is the staff lookup the resolver depends on.
type StaffDirectory interface {
	GetStaff(ctx context.Context, id string) (Staff, error)
}

// WeeklyHoursRepository persists the recurring weekly shift template.
type WeeklyHoursRepository interface {
	ListShifts(ctx context.Context, staffID string, weekday int) ([]Shift, error)
	ListWeek(ctx context.Context, staffID string) ([]Shift, error)
	ReplaceWeekdayShifts(ctx context.Context, staffID string, weekday int, shifts []Shift) error
}

// ExceptionRepository persists concrete time-off intervals. The range
// queries use half-open overlap semantics: a row matches when its start
// is before the requested end and its end is after the requested start.
type ExceptionRepository interface {
	ListExceptions(ctx context.Context, staffID string, from, to time.Time) ([]Exception, error)
	AddException(ctx context.Context, exception Exception) (Exception, error)
	DeleteException(ctx context.Context, staffID, id string) error
}

// ScheduleService resolves recurring local-time shift templates into
// concrete UTC availability windows and manages templates and
// exceptions.
type ScheduleService struct {
	staffs      StaffDirectory
	hours       WeeklyHoursRepository
	exceptions  ExceptionRepository
	defaultZone string
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewScheduleService constructs a ScheduleService. defaultZone is the
// fallback applied when a staff record carries an unusable timezone; an
// empty or invalid value falls back to DefaultTimezone.
func NewScheduleService(
	staffs StaffDirectory,
	hours WeeklyHoursRepository,
	exceptions ExceptionRepository,
	defaultZone string,
	idGenerator func() string,
	now func() time.Time,
	logger *slog.Logger,
) (*ScheduleService, error) {
	if staffs == nil {
		return nil, fmt.Errorf("staffs is nil")
	}
	if hours == nil {
		return nil, fmt.Errorf("hours is nil")
	}
	if exceptions == nil {
		return nil, fmt.Errorf("exceptions is nil")
	}
	if idGenerator == nil {
		return nil, fmt.Errorf("idGenerator is nil")
	}
	if now == nil {
		now = time.Now
	}
	if _, err := time.LoadLocation(defaultZone); defaultZone == "" || err != nil {
		defaultZone = DefaultTimezone
	}
	return &ScheduleService{
		staffs:      staffs,
		hours:       hours,
		exceptions:  exceptions,
		defaultZone: defaultZone,
		idGenerator: idGenerator,
		now:         now,
		logger:      logger,
	}, nil
}

// GetDailyWorkWindows expands the staff member's weekly template for
// the local calendar day containing day, converts it to UTC, and
// subtracts any overlapping exceptions. An unknown staff ID yields an
// empty result rather than an error.
func (s *ScheduleService) GetDailyWorkWindows(ctx context.Context, staffID string, day time.Time) ([]Window, error) {
	if s == nil {
		return nil, fmt.Errorf("ScheduleService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "schedule")

	staff, err := s.staffs.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("staff lookup: %w", err)
	}

	loc := s.locationFor(ctx, staff.Timezone)
	localDay := day.In(loc)
	weekday := int(localDay.Weekday())

	shifts, err := s.hours.ListShifts(ctx, staffID, weekday)
	if err != nil {
		return nil, fmt.Errorf("hours repository: %w", mapScheduleRepoError(err))
	}

	midnight := time.Date(localDay.Year(), localDay.Month(), localDay.Day(), 0, 0, 0, 0, loc)
	windows := make([]interval.Window, 0, len(shifts))
	for _, shift := range shifts {
		if shift.StartMin >= shift.EndMin {
			continue
		}
		start := midnight.Add(time.Duration(shift.StartMin) * time.Minute).UTC()
		end := midnight.Add(time.Duration(shift.EndMin) * time.Minute).UTC()
		// Zone transitions cannot invert an interval built by duration
		// addition, but a defect in stored data must never surface as a
		// negative window.
		if !start.Before(end) {
			continue
		}
		windows = append(windows, interval.Window{Start: start, End: end})
	}

	windows, err = s.applyExceptions(ctx, staffID, windows)
	if err != nil {
		return nil, err
	}

	result := make([]Window, 0, len(windows))
	for _, w := range windows {
		if !w.IsValid() {
			continue
		}
		result = append(result, Window{StartUTC: w.Start, EndUTC: w.End})
	}
	logger.DebugContext(ctx, "windows resolved",
		slog.String("staff_id", staffID),
		slog.Int("weekday", weekday),
		slog.Int("windows", len(result)))
	return result, nil
}

func (s *ScheduleService) applyExceptions(ctx context.Context, staffID string, windows []interval.Window) ([]interval.Window, error) {
	bounds, ok := interval.Bounds(windows)
	if !ok {
		return windows, nil
	}

	exceptions, err := s.exceptions.ListExceptions(ctx, staffID, bounds.Start, bounds.End)
	if err != nil {
		return nil, fmt.Errorf("exception repository: %w", mapScheduleRepoError(err))
	}

	holes := make([]interval.Window, 0, len(exceptions))
	for _, exc := range exceptions {
		if !exc.Valid {
			continue
		}
		holes = append(holes, interval.Window{Start: exc.StartUTC, End: exc.EndUTC})
	}
	return interval.Subtract(windows, holes, time.Minute), nil
}

func (s *ScheduleService) locationFor(ctx context.Context, tz string) *time.Location {
	if loc, err := timeutil.LoadLocation(tz); err == nil {
		return loc
	}
	logger := serviceLogger(ctx, s.logger, "schedule")
	logger.WarnContext(ctx, "invalid staff timezone, using default",
		slog.String("timezone", tz),
		slog.String("default", s.defaultZone))
	loc, err := timeutil.LoadLocation(s.defaultZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetWeeklyHours returns the full weekly template grouped by weekday.
// Weekdays without shifts are absent from the map.
func (s *ScheduleService) GetWeeklyHours(ctx context.Context, staffID string) (map[int][]Shift, error) {
	if s == nil {
		return nil, fmt.Errorf("ScheduleService is nil")
	}
	shifts, err := s.hours.ListWeek(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("hours repository: %w", mapScheduleRepoError(err))
	}
	grouped := map[int][]Shift{}
	for _, shift := range shifts {
		grouped[shift.Weekday] = append(grouped[shift.Weekday], shift)
	}
	return grouped, nil
}

// GetWeekdayHours returns the template shifts for a single weekday,
// 0=Sunday through 6=Saturday.
func (s *ScheduleService) GetWeekdayHours(ctx context.Context, staffID string, weekday int) ([]Shift, error) {
	if s == nil {
		return nil, fmt.Errorf("ScheduleService is nil")
	}
	if weekday < 0 || weekday > 6 {
		validation := newValidationError()
		validation.add("weekday", "weekday must be between 0 and 6")
		return nil, validation
	}
	shifts, err := s.hours.ListShifts(ctx, staffID, weekday)
	if err != nil {
		return nil, fmt.Errorf("hours repository: %w", mapScheduleRepoError(err))
	}
	return shifts, nil
}

// ReplaceWeekdayShifts replaces the template for one weekday wholesale.
func (s *ScheduleService) ReplaceWeekdayShifts(ctx context.Context, params ReplaceWeekdayShiftsParams) error {
	if s == nil {
		return fmt.Errorf("ScheduleService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "schedule")
	if !params.Principal.IsAdmin {
		return ErrUnauthorized
	}

	validation := newValidationError()
	if params.Weekday < 0 || params.Weekday > 6 {
		validation.add("weekday", "weekday must be between 0 and 6")
	}
	for i, shift := range params.Shifts {
		field := fmt.Sprintf("shifts[%d]", i)
		if shift.StartMin < 0 || shift.StartMin >= timeutil.MinutesPerDay {
			validation.add(field+".start_min", "start must be between 0 and 1439")
		}
		if shift.EndMin < 0 || shift.EndMin >= timeutil.MinutesPerDay {
			validation.add(field+".end_min", "end must be between 0 and 1439")
		}
		if shift.StartMin >= shift.EndMin {
			validation.add(field, "start must be before end")
		}
	}
	if validation.hasErrors() {
		return validation
	}

	if _, err := s.staffs.GetStaff(ctx, params.StaffID); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("staff lookup: %w", err)
	}

	shifts := make([]Shift, 0, len(params.Shifts))
	for _, shift := range params.Shifts {
		shift.Weekday = params.Weekday
		shifts = append(shifts, shift)
	}
	if err := s.hours.ReplaceWeekdayShifts(ctx, params.StaffID, params.Weekday, shifts); err != nil {
		return fmt.Errorf("hours repository: %w", mapScheduleRepoError(err))
	}
	logger.InfoContext(ctx, "weekday shifts replaced",
		slog.String("staff_id", params.StaffID),
		slog.Int("weekday", params.Weekday),
		slog.Int("shifts", len(shifts)))
	return nil
}

// ListExceptions returns the exceptions overlapping [from, to) ordered
// by start time ascending.
func (s *ScheduleService) ListExceptions(ctx context.Context, staffID string, from, to time.Time) ([]Exception, error) {
	if s == nil {
		return nil, fmt.Errorf("ScheduleService is nil")
	}
	exceptions, err := s.exceptions.ListExceptions(ctx, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("exception repository: %w", mapScheduleRepoError(err))
	}
	return exceptions, nil
}

// AddException records a concrete time-off interval.
func (s *ScheduleService) AddException(ctx context.Context, params AddExceptionParams) (Exception, error) {
	if s == nil {
		return Exception{}, fmt.Errorf("ScheduleService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "schedule")
	if !params.Principal.IsAdmin {
		return Exception{}, ErrUnauthorized
	}

	validation := newValidationError()
	excType := strings.TrimSpace(strings.ToLower(params.Input.Type))
	if !ValidExceptionType(excType) {
		validation.add("type", "type must be holiday, sick or custom")
	}
	if params.Input.StartUTC.IsZero() {
		validation.add("start_utc", "start is required")
	}
	if params.Input.EndUTC.IsZero() {
		validation.add("end_utc", "end is required")
	}
	if !params.Input.StartUTC.IsZero() && !params.Input.EndUTC.IsZero() &&
		!params.Input.StartUTC.Before(params.Input.EndUTC) {
		validation.add("end_utc", "end must be after start")
	}
	if validation.hasErrors() {
		return Exception{}, validation
	}

	if _, err := s.staffs.GetStaff(ctx, params.StaffID); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
			return Exception{}, ErrNotFound
		}
		return Exception{}, fmt.Errorf("staff lookup: %w", err)
	}

	exception := Exception{
		ID:       s.idGenerator(),
		StaffID:  params.StaffID,
		Type:     ExceptionType(excType),
		StartUTC: params.Input.StartUTC.UTC(),
		EndUTC:   params.Input.EndUTC.UTC(),
		Note:     strings.TrimSpace(params.Input.Note),
		Valid:    true,
	}
	created, err := s.exceptions.AddException(ctx, exception)
	if err != nil {
		return Exception{}, fmt.Errorf("exception repository: %w", mapScheduleRepoError(err))
	}
	logger.InfoContext(ctx, "exception added",
		slog.String("staff_id", params.StaffID),
		slog.String("exception_id", created.ID),
		slog.String("type", string(created.Type)))
	return created, nil
}

// DeleteException removes a single exception belonging to staffID.
func (s *ScheduleService) DeleteException(ctx context.Context, principal Principal, staffID, exceptionID string) error {
	if s == nil {
		return fmt.Errorf("ScheduleService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "schedule")
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if err := s.exceptions.DeleteException(ctx, staffID, exceptionID); err != nil {
		return fmt.Errorf("exception repository: %w", mapScheduleRepoError(err))
	}
	logger.InfoContext(ctx, "exception deleted",
		slog.String("staff_id", staffID),
		slog.String("exception_id", exceptionID))
	return nil
}

func mapScheduleRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrNotFound
	default:
		return err
	}
}
