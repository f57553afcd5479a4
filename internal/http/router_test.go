package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/staff-availability/internal/application"
)

type stubAuthService struct {
	authenticateFunc func(ctx context.Context, params application.AuthenticateParams) (application.AuthenticateResult, error)
	validateFunc     func(ctx context.Context, token string) (application.Principal, error)
	revokeFunc       func(ctx context.Context, token string) error
}

func (s *stubAuthService) Authenticate(ctx context.Context, params application.AuthenticateParams) (application.AuthenticateResult, error) {
	if s.authenticateFunc == nil {
		return application.AuthenticateResult{}, application.ErrInvalidCredentials
	}
	return s.authenticateFunc(ctx, params)
}

func (s *stubAuthService) ValidateSession(ctx context.Context, token string) (application.Principal, error) {
	if s.validateFunc == nil {
		return application.Principal{}, application.ErrUnauthorized
	}
	return s.validateFunc(ctx, token)
}

func (s *stubAuthService) RevokeSession(ctx context.Context, token string) error {
	if s.revokeFunc == nil {
		return nil
	}
	return s.revokeFunc(ctx, token)
}

type stubStaffService struct {
	StaffService
	createFunc func(ctx context.Context, params application.CreateStaffParams) (application.Staff, error)
	getFunc    func(ctx context.Context, id string) (application.Staff, error)
}

func (s *stubStaffService) CreateStaff(ctx context.Context, params application.CreateStaffParams) (application.Staff, error) {
	return s.createFunc(ctx, params)
}

func (s *stubStaffService) GetStaff(ctx context.Context, id string) (application.Staff, error) {
	return s.getFunc(ctx, id)
}

type stubScheduleService struct {
	ScheduleService
	windowsFunc     func(ctx context.Context, staffID string, day time.Time) ([]application.Window, error)
	weekdayFunc     func(ctx context.Context, staffID string, weekday int) ([]application.Shift, error)
	addExcFunc      func(ctx context.Context, params application.AddExceptionParams) (application.Exception, error)
	replaceFunc     func(ctx context.Context, params application.ReplaceWeekdayShiftsParams) error
	weeklyHoursFunc func(ctx context.Context, staffID string) (map[int][]application.Shift, error)
}

func (s *stubScheduleService) GetDailyWorkWindows(ctx context.Context, staffID string, day time.Time) ([]application.Window, error) {
	return s.windowsFunc(ctx, staffID, day)
}

func (s *stubScheduleService) GetWeekdayHours(ctx context.Context, staffID string, weekday int) ([]application.Shift, error) {
	return s.weekdayFunc(ctx, staffID, weekday)
}

func (s *stubScheduleService) AddException(ctx context.Context, params application.AddExceptionParams) (application.Exception, error) {
	return s.addExcFunc(ctx, params)
}

func (s *stubScheduleService) ReplaceWeekdayShifts(ctx context.Context, params application.ReplaceWeekdayShiftsParams) error {
	return s.replaceFunc(ctx, params)
}

func (s *stubScheduleService) GetWeeklyHours(ctx context.Context, staffID string) (map[int][]application.Shift, error) {
	return s.weeklyHoursFunc(ctx, staffID)
}

func adminAuth() *stubAuthService {
	return &stubAuthService{
		validateFunc: func(_ context.Context, token string) (application.Principal, error) {
			if token != "valid-token" {
				return application.Principal{}, application.ErrUnauthorized
			}
			return application.Principal{AccountID: "acct-1", IsAdmin: true}, nil
		},
	}
}

func newTestRouter(auth AuthService, staff StaffService, schedule ScheduleService) http.Handler {
	return NewRouter(Handlers{
		Auth:     NewAuthHandler(auth, nil),
		Staff:    NewStaffHandler(staff, nil),
		Schedule: NewScheduleHandler(schedule, nil),
	}, auth, nil)
}

func TestRouterHealthzIsOpen(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubAuthService{}, &stubStaffService{}, &stubScheduleService{})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want 200", recorder.Code)
	}
}

func TestRouterRejectsMissingToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubAuthService{}, &stubStaffService{}, &stubScheduleService{})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/staff", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("GET /staff without token status = %d, want 401", recorder.Code)
	}
}

func TestCreateSessionReturnsToken(t *testing.T) {
	t.Parallel()

	auth := &stubAuthService{
		authenticateFunc: func(_ context.Context, params application.AuthenticateParams) (application.AuthenticateResult, error) {
			if params.Email != "admin@example.com" || params.Password != "s3cret" {
				return application.AuthenticateResult{}, application.ErrInvalidCredentials
			}
			return application.AuthenticateResult{
				Account: application.Account{ID: "acct-1", Email: params.Email, IsAdmin: true},
				Session: application.Session{Token: "valid-token", ExpiresAt: time.Date(2026, time.January, 11, 12, 0, 0, 0, time.UTC)},
			}, nil
		},
	}
	router := newTestRouter(auth, &stubStaffService{}, &stubScheduleService{})

	body := `{"email":"admin@example.com","password":"s3cret"}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(body)))

	if recorder.Code != http.StatusCreated {
		t.Fatalf("POST /sessions status = %d, want 201", recorder.Code)
	}
	var response sessionResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Token != "valid-token" {
		t.Fatalf("token = %q", response.Token)
	}
}

func TestCreateSessionWrongPassword(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubAuthService{}, &stubStaffService{}, &stubScheduleService{})
	body := `{"email":"admin@example.com","password":"wrong"}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(body)))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("POST /sessions status = %d, want 401", recorder.Code)
	}
}

func TestWindowsEndpoint(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.January, 14, 8, 0, 0, 0, time.UTC)
	schedule := &stubScheduleService{
		windowsFunc: func(_ context.Context, staffID string, day time.Time) ([]application.Window, error) {
			if staffID != "staff-1" {
				return nil, nil
			}
			if !day.Equal(time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC)) {
				return nil, nil
			}
			return []application.Window{{StartUTC: start, EndUTC: start.Add(8 * time.Hour)}}, nil
		},
	}
	router := newTestRouter(adminAuth(), &stubStaffService{}, schedule)

	req := httptest.NewRequest(http.MethodGet, "/staff/staff-1/windows?day=2026-01-14", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("GET windows status = %d, want 200", recorder.Code)
	}
	var response []windowResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response) != 1 || !response[0].StartUTC.Equal(start) {
		t.Fatalf("response = %v", response)
	}
}

func TestWindowsEndpointRejectsBadDay(t *testing.T) {
	t.Parallel()

	router := newTestRouter(adminAuth(), &stubStaffService{}, &stubScheduleService{})
	req := httptest.NewRequest(http.MethodGet, "/staff/staff-1/windows?day=14-01-2026", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("GET windows with bad day status = %d, want 400", recorder.Code)
	}
}

func TestWeekdayHoursFormatsClockStrings(t *testing.T) {
	t.Parallel()

	schedule := &stubScheduleService{
		weekdayFunc: func(_ context.Context, _ string, weekday int) ([]application.Shift, error) {
			return []application.Shift{{Weekday: weekday, StartMin: 540, EndMin: 1020}}, nil
		},
	}
	router := newTestRouter(adminAuth(), &stubStaffService{}, schedule)

	req := httptest.NewRequest(http.MethodGet, "/staff/staff-1/hours/3", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("GET weekday hours status = %d, want 200", recorder.Code)
	}
	var response []shiftResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response) != 1 || response[0].Start != "09:00" || response[0].End != "17:00" {
		t.Fatalf("response = %v, want 09:00-17:00", response)
	}
}

func TestReplaceWeekdayHoursAcceptsClockStrings(t *testing.T) {
	t.Parallel()

	var got application.ReplaceWeekdayShiftsParams
	schedule := &stubScheduleService{
		replaceFunc: func(_ context.Context, params application.ReplaceWeekdayShiftsParams) error {
			got = params
			return nil
		},
	}
	router := newTestRouter(adminAuth(), &stubStaffService{}, schedule)

	body := `{"shifts":[{"start":"09:00","end":"17:00"},{"start_min":1080,"end_min":1200}]}`
	req := httptest.NewRequest(http.MethodPut, "/staff/staff-1/hours/2", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer valid-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("PUT weekday hours status = %d, want 204", recorder.Code)
	}
	if len(got.Shifts) != 2 {
		t.Fatalf("shifts = %v, want 2", got.Shifts)
	}
	if got.Shifts[0].StartMin != 540 || got.Shifts[0].EndMin != 1020 {
		t.Errorf("clock shift = %+v, want 540-1020", got.Shifts[0])
	}
	if got.Shifts[1].StartMin != 1080 || got.Shifts[1].EndMin != 1200 {
		t.Errorf("minute shift = %+v, want 1080-1200", got.Shifts[1])
	}
}

func TestCreateStaffMapsValidationError(t *testing.T) {
	t.Parallel()

	validation := &application.ValidationError{FieldErrors: map[string]string{"email": "email is required"}}
	staff := &stubStaffService{
		createFunc: func(context.Context, application.CreateStaffParams) (application.Staff, error) {
			return application.Staff{}, validation
		},
	}
	router := newTestRouter(adminAuth(), staff, &stubScheduleService{})

	req := httptest.NewRequest(http.MethodPost, "/staff", strings.NewReader(`{"display_name":"X"}`))
	req.Header.Set("Authorization", "Bearer valid-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST /staff status = %d, want 422", recorder.Code)
	}
	var response errorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Fields["email"] != "email is required" {
		t.Fatalf("fields = %v", response.Fields)
	}
}

func TestAddExceptionPassesPathAndPrincipal(t *testing.T) {
	t.Parallel()

	var got application.AddExceptionParams
	schedule := &stubScheduleService{
		addExcFunc: func(_ context.Context, params application.AddExceptionParams) (application.Exception, error) {
			got = params
			return application.Exception{ID: "exc-1", Type: application.ExceptionHoliday, StartUTC: params.Input.StartUTC, EndUTC: params.Input.EndUTC}, nil
		},
	}
	router := newTestRouter(adminAuth(), &stubStaffService{}, schedule)

	body := `{"type":"holiday","start_utc":"2026-02-01T10:00:00Z","end_utc":"2026-02-01T12:00:00Z","note":"winter break"}`
	req := httptest.NewRequest(http.MethodPost, "/staff/staff-1/exceptions", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer valid-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("POST exceptions status = %d, want 201", recorder.Code)
	}
	if got.StaffID != "staff-1" {
		t.Errorf("staff ID = %q", got.StaffID)
	}
	if !got.Principal.IsAdmin {
		t.Errorf("principal = %+v, want admin", got.Principal)
	}
}

func TestDeleteSessionRevokesToken(t *testing.T) {
	t.Parallel()

	var revoked string
	auth := adminAuth()
	auth.revokeFunc = func(_ context.Context, token string) error {
		revoked = token
		return nil
	}
	router := newTestRouter(auth, &stubStaffService{}, &stubScheduleService{})

	req := httptest.NewRequest(http.MethodDelete, "/sessions/current", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("DELETE /sessions/current status = %d, want 204", recorder.Code)
	}
	if revoked != "valid-token" {
		t.Fatalf("revoked token = %q", revoked)
	}
}
