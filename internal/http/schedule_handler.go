package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/example/staff-availability/internal/application"
	"github.com/example/staff-availability/internal/metrics"
	"github.com/example/staff-availability/internal/timeutil"
)

// ScheduleService is the scheduling surface the handlers depend on.
type ScheduleService interface {
	GetDailyWorkWindows(ctx context.Context, staffID string, day time.Time) ([]application.Window, error)
	GetWeeklyHours(ctx context.Context, staffID string) (map[int][]application.Shift, error)
	GetWeekdayHours(ctx context.Context, staffID string, weekday int) ([]application.Shift, error)
	ReplaceWeekdayShifts(ctx context.Context, params application.ReplaceWeekdayShiftsParams) error
	ListExceptions(ctx context.Context, staffID string, from, to time.Time) ([]application.Exception, error)
	AddException(ctx context.Context, params application.AddExceptionParams) (application.Exception, error)
	DeleteException(ctx context.Context, principal application.Principal, staffID, exceptionID string) error
}

// ScheduleHandler serves weekly hours, exceptions and resolved windows.
type ScheduleHandler struct {
	schedule  ScheduleService
	responder responder
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(schedule ScheduleService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, responder: responder{logger: logger}}
}

type shiftResponse struct {
	StartMin int    `json:"start_min"`
	EndMin   int    `json:"end_min"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

func toShiftResponse(shift application.Shift) shiftResponse {
	return shiftResponse{
		StartMin: shift.StartMin,
		EndMin:   shift.EndMin,
		Start:    timeutil.MinutesToClock(shift.StartMin),
		End:      timeutil.MinutesToClock(shift.EndMin),
	}
}

// shiftRequest accepts either minute offsets or HH:MM clock strings;
// minute offsets win when both are present.
type shiftRequest struct {
	StartMin *int   `json:"start_min"`
	EndMin   *int   `json:"end_min"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

func (r shiftRequest) minutes() (int, int) {
	start := timeutil.ClockToMinutes(r.Start)
	if r.StartMin != nil {
		start = *r.StartMin
	}
	end := timeutil.ClockToMinutes(r.End)
	if r.EndMin != nil {
		end = *r.EndMin
	}
	return start, end
}

type replaceShiftsRequest struct {
	Shifts []shiftRequest `json:"shifts"`
}

type windowResponse struct {
	StartUTC time.Time `json:"start_utc"`
	EndUTC   time.Time `json:"end_utc"`
}

type exceptionRequest struct {
	Type     string    `json:"type"`
	StartUTC time.Time `json:"start_utc"`
	EndUTC   time.Time `json:"end_utc"`
	Note     string    `json:"note"`
}

type exceptionResponse struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	StartUTC time.Time `json:"start_utc"`
	EndUTC   time.Time `json:"end_utc"`
	Note     string    `json:"note,omitempty"`
}

// WeeklyHours handles GET /staff/{id}/hours. The response maps weekday
// numbers (0=Sunday) to shift lists with both minute offsets and
// HH:MM clock strings.
func (h *ScheduleHandler) WeeklyHours(w http.ResponseWriter, req *http.Request) {
	grouped, err := h.schedule.GetWeeklyHours(req.Context(), req.PathValue("id"))
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	payload := map[string][]shiftResponse{}
	for weekday, shifts := range grouped {
		entries := make([]shiftResponse, 0, len(shifts))
		for _, shift := range shifts {
			entries = append(entries, toShiftResponse(shift))
		}
		payload[strconv.Itoa(weekday)] = entries
	}
	h.responder.writeJSON(w, req, http.StatusOK, payload)
}

// WeekdayHours handles GET /staff/{id}/hours/{weekday}.
func (h *ScheduleHandler) WeekdayHours(w http.ResponseWriter, req *http.Request) {
	weekday, err := strconv.Atoi(req.PathValue("weekday"))
	if err != nil {
		h.responder.writeError(w, req, http.StatusBadRequest, "weekday must be a number")
		return
	}
	shifts, err := h.schedule.GetWeekdayHours(req.Context(), req.PathValue("id"), weekday)
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	payload := make([]shiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		payload = append(payload, toShiftResponse(shift))
	}
	h.responder.writeJSON(w, req, http.StatusOK, payload)
}

// ReplaceWeekdayHours handles PUT /staff/{id}/hours/{weekday}.
func (h *ScheduleHandler) ReplaceWeekdayHours(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFromContext(req.Context())
	weekday, err := strconv.Atoi(req.PathValue("weekday"))
	if err != nil {
		h.responder.writeError(w, req, http.StatusBadRequest, "weekday must be a number")
		return
	}
	var body replaceShiftsRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.responder.writeError(w, req, http.StatusBadRequest, "malformed request body")
		return
	}

	shifts := make([]application.Shift, 0, len(body.Shifts))
	for _, shift := range body.Shifts {
		start, end := shift.minutes()
		shifts = append(shifts, application.Shift{Weekday: weekday, StartMin: start, EndMin: end})
	}
	err = h.schedule.ReplaceWeekdayShifts(req.Context(), application.ReplaceWeekdayShiftsParams{
		Principal: principal,
		StaffID:   req.PathValue("id"),
		Weekday:   weekday,
		Shifts:    shifts,
	})
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	h.responder.writeJSON(w, req, http.StatusNoContent, nil)
}

// Windows handles GET /staff/{id}/windows?day=YYYY-MM-DD.
func (h *ScheduleHandler) Windows(w http.ResponseWriter, req *http.Request) {
	dayParam := req.URL.Query().Get("day")
	day, err := time.ParseInLocation("2006-01-02", dayParam, time.UTC)
	if err != nil {
		h.responder.writeError(w, req, http.StatusBadRequest, "day must be YYYY-MM-DD")
		return
	}

	windows, err := h.schedule.GetDailyWorkWindows(req.Context(), req.PathValue("id"), day)
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	metrics.ObserveResolve(len(windows))

	payload := make([]windowResponse, 0, len(windows))
	for _, window := range windows {
		payload = append(payload, windowResponse{StartUTC: window.StartUTC, EndUTC: window.EndUTC})
	}
	h.responder.writeJSON(w, req, http.StatusOK, payload)
}

// ListExceptions handles GET /staff/{id}/exceptions?from=&to= with
// RFC3339 bounds.
func (h *ScheduleHandler) ListExceptions(w http.ResponseWriter, req *http.Request) {
	from, err := time.Parse(time.RFC3339, req.URL.Query().Get("from"))
	if err != nil {
		h.responder.writeError(w, req, http.StatusBadRequest, "from must be an RFC3339 timestamp")
		return
	}
	to, err := time.Parse(time.RFC3339, req.URL.Query().Get("to"))
	if err != nil {
		h.responder.writeError(w, req, http.StatusBadRequest, "to must be an RFC3339 timestamp")
		return
	}

	exceptions, err := h.schedule.ListExceptions(req.Context(), req.PathValue("id"), from, to)
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	payload := make([]exceptionResponse, 0, len(exceptions))
	for _, exc := range exceptions {
		payload = append(payload, exceptionResponse{
			ID:       exc.ID,
			Type:     string(exc.Type),
			StartUTC: exc.StartUTC,
			EndUTC:   exc.EndUTC,
			Note:     exc.Note,
		})
	}
	h.responder.writeJSON(w, req, http.StatusOK, payload)
}

// AddException handles POST /staff/{id}/exceptions.
func (h *ScheduleHandler) AddException(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFromContext(req.Context())
	var body exceptionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.responder.writeError(w, req, http.StatusBadRequest, "malformed request body")
		return
	}

	exception, err := h.schedule.AddException(req.Context(), application.AddExceptionParams{
		Principal: principal,
		StaffID:   req.PathValue("id"),
		Input: application.ExceptionInput{
			Type:     body.Type,
			StartUTC: body.StartUTC,
			EndUTC:   body.EndUTC,
			Note:     body.Note,
		},
	})
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	h.responder.writeJSON(w, req, http.StatusCreated, exceptionResponse{
		ID:       exception.ID,
		Type:     string(exception.Type),
		StartUTC: exception.StartUTC,
		EndUTC:   exception.EndUTC,
		Note:     exception.Note,
	})
}

// DeleteException handles DELETE /staff/{id}/exceptions/{excID}.
func (h *ScheduleHandler) DeleteException(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFromContext(req.Context())
	err := h.schedule.DeleteException(req.Context(), principal, req.PathValue("id"), req.PathValue("excID"))
	if err != nil {
		h.responder.handleServiceError(w, req, err)
		return
	}
	h.responder.writeJSON(w, req, http.StatusNoContent, nil)
}
