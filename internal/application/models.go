package application

import "time"

// DefaultTimezone is substituted whenever a staff record carries an
// invalid or empty IANA timezone identifier. Schedules degrade to this
// zone instead of failing the whole day's lookup.
const DefaultTimezone = "Europe/Oslo"

// Principal represents the authenticated account invoking a service method.
type Principal struct {
	AccountID string
	IsAdmin   bool
}

// Skill is one competency attached to a staff member.
type Skill struct {
	Label string
	Slug  string
	Level string
}

// Staff represents a staff member as exposed by the application services.
type Staff struct {
	ID          string
	DisplayName string
	Email       string
	Phone       string
	Timezone    string
	Skills      []Skill
	Weight      int
	CooldownSec int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StaffInput captures caller provided staff fields. Skills is the
// comma-separated "Label" or "Label:Level" form accepted by the admin
// surface.
type StaffInput struct {
	DisplayName string
	Email       string
	Phone       string
	Timezone    string
	Skills      string
	Weight      int
	CooldownSec int
	Active      bool
}

// CreateStaffParams wraps the data required to create a staff member.
type CreateStaffParams struct {
	Principal Principal
	Input     StaffInput
}

// UpdateStaffParams wraps the data required to update a staff member.
type UpdateStaffParams struct {
	Principal Principal
	StaffID   string
	Input     StaffInput
}

// ListStaffParams wraps the data required to list staff members.
type ListStaffParams struct {
	Principal       Principal
	IncludeInactive bool
}

// Shift is one recurring weekly availability block in the staff
// member's local time, expressed as minutes since local midnight.
type Shift struct {
	Weekday  int
	StartMin int
	EndMin   int
}

// ReplaceWeekdayShiftsParams wraps the data required to replace the
// shift template for a single weekday.
type ReplaceWeekdayShiftsParams struct {
	Principal Principal
	StaffID   string
	Weekday   int
	Shifts    []Shift
}

// ExceptionType classifies a time-off exception.
type ExceptionType string

const (
	ExceptionHoliday ExceptionType = "holiday"
	ExceptionSick    ExceptionType = "sick"
	ExceptionCustom  ExceptionType = "custom"
)

// ValidExceptionType reports whether value is a known exception type.
func ValidExceptionType(value string) bool {
	switch ExceptionType(value) {
	case ExceptionHoliday, ExceptionSick, ExceptionCustom:
		return true
	}
	return false
}

// Exception is a concrete, non-recurring UTC interval during which a
// staff member is unavailable. Valid is false when the stored row could
// not be parsed; such rows are skipped during window subtraction rather
// than corrupting the whole computation.
type Exception struct {
	ID       string
	StaffID  string
	Type     ExceptionType
	StartUTC time.Time
	EndUTC   time.Time
	Note     string
	Valid    bool
}

// ExceptionInput captures caller provided exception fields.
type ExceptionInput struct {
	Type     string
	StartUTC time.Time
	EndUTC   time.Time
	Note     string
}

// AddExceptionParams wraps the data required to record an exception.
type AddExceptionParams struct {
	Principal Principal
	StaffID   string
	Input     ExceptionInput
}

// Window is a resolved availability span in absolute UTC, produced only
// as resolver output and never persisted.
type Window struct {
	StartUTC time.Time
	EndUTC   time.Time
}

// Account models an administrative account able to manage the directory.
type Account struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents an authenticated session issued to an account.
type Session struct {
	ID        string
	AccountID string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// AuthenticateParams captures the data required to authenticate an account.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication.
type AuthenticateResult struct {
	Account Account
	Session Session
}
