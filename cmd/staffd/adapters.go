package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/staff-availability/internal/application"
	"github.com/example/staff-availability/internal/persistence"
)

// staffRepositoryAdapter bridges the sqlite staff repository to the
// application service interface, translating between stored records
// and domain values.
type staffRepositoryAdapter struct {
	repo persistence.StaffRepository
}

func (a *staffRepositoryAdapter) CreateStaff(ctx context.Context, staff application.Staff) (application.Staff, error) {
	record, err := staffToRecord(staff)
	if err != nil {
		return application.Staff{}, err
	}
	if err := a.repo.Create(ctx, record); err != nil {
		return application.Staff{}, err
	}
	return staff, nil
}

func (a *staffRepositoryAdapter) GetStaff(ctx context.Context, id string) (application.Staff, error) {
	record, err := a.repo.Get(ctx, id)
	if err != nil {
		return application.Staff{}, err
	}
	return staffFromRecord(record), nil
}

func (a *staffRepositoryAdapter) ListStaff(ctx context.Context, includeInactive bool) ([]application.Staff, error) {
	records, err := a.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	staffs := make([]application.Staff, 0, len(records))
	for _, record := range records {
		staffs = append(staffs, staffFromRecord(record))
	}
	return staffs, nil
}

func (a *staffRepositoryAdapter) UpdateStaff(ctx context.Context, staff application.Staff) (application.Staff, error) {
	record, err := staffToRecord(staff)
	if err != nil {
		return application.Staff{}, err
	}
	if err := a.repo.Update(ctx, record); err != nil {
		return application.Staff{}, err
	}
	return staff, nil
}

func (a *staffRepositoryAdapter) DeleteStaff(ctx context.Context, id string) error {
	return a.repo.Delete(ctx, id)
}

func (a *staffRepositoryAdapter) SetStaffActive(ctx context.Context, id string, active bool) error {
	return a.repo.SetActive(ctx, id, active, time.Now().UTC())
}

func staffToRecord(staff application.Staff) (persistence.StaffRecord, error) {
	skills := staff.Skills
	if skills == nil {
		skills = []application.Skill{}
	}
	encoded, err := json.Marshal(skills)
	if err != nil {
		return persistence.StaffRecord{}, fmt.Errorf("encode skills: %w", err)
	}
	return persistence.StaffRecord{
		ID:          staff.ID,
		DisplayName: staff.DisplayName,
		Email:       staff.Email,
		Phone:       staff.Phone,
		Timezone:    staff.Timezone,
		Skills:      string(encoded),
		Weight:      staff.Weight,
		CooldownSec: staff.CooldownSec,
		Active:      staff.Active,
		CreatedAt:   staff.CreatedAt,
		UpdatedAt:   staff.UpdatedAt,
	}, nil
}

// staffFromRecord coerces stored rows instead of rejecting them: an
// unreadable skills column becomes an empty list, bad weights and
// timezones are fixed up by the graceful constructor.
func staffFromRecord(record persistence.StaffRecord) application.Staff {
	var skills []application.Skill
	if err := json.Unmarshal([]byte(record.Skills), &skills); err != nil {
		skills = nil
	}
	return application.StaffFromStorage(application.Staff{
		ID:          record.ID,
		DisplayName: record.DisplayName,
		Email:       record.Email,
		Phone:       record.Phone,
		Timezone:    record.Timezone,
		Skills:      skills,
		Weight:      record.Weight,
		CooldownSec: record.CooldownSec,
		Active:      record.Active,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	})
}

type hoursRepositoryAdapter struct {
	repo persistence.WeeklyHoursRepository
}

func (a *hoursRepositoryAdapter) ListShifts(ctx context.Context, staffID string, weekday int) ([]application.Shift, error) {
	records, err := a.repo.ListWeekday(ctx, staffID, weekday)
	if err != nil {
		return nil, err
	}
	return shiftsFromRecords(records), nil
}

func (a *hoursRepositoryAdapter) ListWeek(ctx context.Context, staffID string) ([]application.Shift, error) {
	records, err := a.repo.ListWeek(ctx, staffID)
	if err != nil {
		return nil, err
	}
	return shiftsFromRecords(records), nil
}

func (a *hoursRepositoryAdapter) ReplaceWeekdayShifts(ctx context.Context, staffID string, weekday int, shifts []application.Shift) error {
	records := make([]persistence.ShiftRecord, 0, len(shifts))
	for _, shift := range shifts {
		records = append(records, persistence.ShiftRecord{
			StaffID:  staffID,
			Weekday:  shift.Weekday,
			StartMin: shift.StartMin,
			EndMin:   shift.EndMin,
		})
	}
	return a.repo.ReplaceWeekday(ctx, staffID, weekday, records)
}

func shiftsFromRecords(records []persistence.ShiftRecord) []application.Shift {
	shifts := make([]application.Shift, 0, len(records))
	for _, record := range records {
		shifts = append(shifts, application.Shift{
			Weekday:  record.Weekday,
			StartMin: record.StartMin,
			EndMin:   record.EndMin,
		})
	}
	return shifts
}

type exceptionRepositoryAdapter struct {
	repo persistence.ExceptionRepository
}

func (a *exceptionRepositoryAdapter) ListExceptions(ctx context.Context, staffID string, from, to time.Time) ([]application.Exception, error) {
	records, err := a.repo.ListOverlapping(ctx, staffID, from, to)
	if err != nil {
		return nil, err
	}
	exceptions := make([]application.Exception, 0, len(records))
	for _, record := range records {
		exceptions = append(exceptions, exceptionFromRecord(record))
	}
	return exceptions, nil
}

func (a *exceptionRepositoryAdapter) AddException(ctx context.Context, exception application.Exception) (application.Exception, error) {
	record := persistence.ExceptionRecord{
		ID:       exception.ID,
		StaffID:  exception.StaffID,
		Type:     string(exception.Type),
		StartUTC: exception.StartUTC.UTC().Format(time.RFC3339),
		EndUTC:   exception.EndUTC.UTC().Format(time.RFC3339),
		Note:     exception.Note,
	}
	if err := a.repo.Create(ctx, record); err != nil {
		return application.Exception{}, err
	}
	return exception, nil
}

func (a *exceptionRepositoryAdapter) DeleteException(ctx context.Context, staffID, id string) error {
	return a.repo.Delete(ctx, staffID, id)
}

// exceptionFromRecord marks rows with unparseable timestamps invalid
// so the resolver can skip them individually.
func exceptionFromRecord(record persistence.ExceptionRecord) application.Exception {
	exception := application.Exception{
		ID:      record.ID,
		StaffID: record.StaffID,
		Type:    application.ExceptionType(record.Type),
		Note:    record.Note,
		Valid:   true,
	}
	start, startErr := time.Parse(time.RFC3339, record.StartUTC)
	end, endErr := time.Parse(time.RFC3339, record.EndUTC)
	if startErr != nil || endErr != nil {
		exception.Valid = false
		return exception
	}
	exception.StartUTC = start.UTC()
	exception.EndUTC = end.UTC()
	return exception
}

type accountRepositoryAdapter struct {
	repo persistence.AccountRepository
}

func (a *accountRepositoryAdapter) GetAccount(ctx context.Context, id string) (application.Account, error) {
	record, err := a.repo.Get(ctx, id)
	if err != nil {
		return application.Account{}, err
	}
	return accountFromRecord(record), nil
}

func (a *accountRepositoryAdapter) GetAccountByEmail(ctx context.Context, email string) (application.Account, error) {
	record, err := a.repo.GetByEmail(ctx, email)
	if err != nil {
		return application.Account{}, err
	}
	return accountFromRecord(record), nil
}

func accountFromRecord(record persistence.AccountRecord) application.Account {
	return application.Account{
		ID:           record.ID,
		Email:        record.Email,
		DisplayName:  record.DisplayName,
		PasswordHash: record.PasswordHash,
		IsAdmin:      record.IsAdmin,
		Disabled:     record.Disabled,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

type sessionRepositoryAdapter struct {
	repo persistence.SessionRepository
}

func (a *sessionRepositoryAdapter) CreateSession(ctx context.Context, session application.Session) (application.Session, error) {
	record := persistence.SessionRecord{
		ID:        session.ID,
		AccountID: session.AccountID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
		RevokedAt: session.RevokedAt,
	}
	if err := a.repo.Create(ctx, record); err != nil {
		return application.Session{}, err
	}
	return session, nil
}

func (a *sessionRepositoryAdapter) GetSessionByToken(ctx context.Context, token string) (application.Session, error) {
	record, err := a.repo.GetByToken(ctx, token)
	if err != nil {
		return application.Session{}, err
	}
	return application.Session{
		ID:        record.ID,
		AccountID: record.AccountID,
		Token:     record.Token,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
		RevokedAt: record.RevokedAt,
	}, nil
}

func (a *sessionRepositoryAdapter) RevokeSession(ctx context.Context, id string, revokedAt time.Time) error {
	return a.repo.Revoke(ctx, id, revokedAt)
}
