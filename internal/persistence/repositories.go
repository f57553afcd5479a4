package persistence

import (
	"context"
	"time"
)

// StaffRepository persists staff directory rows.
type StaffRepository interface {
	Create(ctx context.Context, record StaffRecord) error
	Get(ctx context.Context, id string) (StaffRecord, error)
	List(ctx context.Context, includeInactive bool) ([]StaffRecord, error)
	Update(ctx context.Context, record StaffRecord) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
}

// WeeklyHoursRepository persists the recurring weekly shift template.
type WeeklyHoursRepository interface {
	ListWeekday(ctx context.Context, staffID string, weekday int) ([]ShiftRecord, error)
	ListWeek(ctx context.Context, staffID string) ([]ShiftRecord, error)
	ReplaceWeekday(ctx context.Context, staffID string, weekday int, shifts []ShiftRecord) error
}

// ExceptionRepository persists exception rows. ListOverlapping matches
// rows whose interval overlaps [from, to) half-open, ordered by start
// ascending.
type ExceptionRepository interface {
	Create(ctx context.Context, record ExceptionRecord) error
	ListOverlapping(ctx context.Context, staffID string, from, to time.Time) ([]ExceptionRecord, error)
	Delete(ctx context.Context, staffID, id string) error
}

// AccountRepository persists administrative accounts.
type AccountRepository interface {
	Create(ctx context.Context, record AccountRecord) error
	Get(ctx context.Context, id string) (AccountRecord, error)
	GetByEmail(ctx context.Context, email string) (AccountRecord, error)
}

// SessionRepository persists sessions.
type SessionRepository interface {
	Create(ctx context.Context, record SessionRecord) error
	GetByToken(ctx context.Context, token string) (SessionRecord, error)
	Revoke(ctx context.Context, id string, revokedAt time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
