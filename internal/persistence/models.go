package persistence

import "time"

// StaffRecord is the stored form of a staff member. Skills holds the
// JSON-encoded skill list exactly as written to the column.
type StaffRecord struct {
	ID          string
	DisplayName string
	Email       string
	Phone       string
	Timezone    string
	Skills      string
	Weight      int
	CooldownSec int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ShiftRecord is one stored weekly template row.
type ShiftRecord struct {
	StaffID  string
	Weekday  int
	StartMin int
	EndMin   int
}

// ExceptionRecord is one stored exception row. StartUTC and EndUTC
// carry the raw column text; callers parse them and decide how to
// treat rows that do not parse.
type ExceptionRecord struct {
	ID       string
	StaffID  string
	Type     string
	StartUTC string
	EndUTC   string
	Note     string
}

// AccountRecord is the stored form of an administrative account.
type AccountRecord struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionRecord is the stored form of a session.
type SessionRecord struct {
	ID        string
	AccountID string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
