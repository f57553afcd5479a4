package http

import (
	"log/slog"
	"net/http"
)

// Handlers bundles the endpoint handlers wired into the router.
type Handlers struct {
	Auth     *AuthHandler
	Staff    *StaffHandler
	Schedule *ScheduleHandler
}

// NewRouter builds the HTTP routing table. Session creation and the
// health endpoint are open; everything else requires a valid session.
func NewRouter(handlers Handlers, auth AuthService, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	protect := RequireSession(auth, responder{logger: logger})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("POST /sessions", handlers.Auth.CreateSession)
	mux.Handle("DELETE /sessions/current", protect(http.HandlerFunc(handlers.Auth.DeleteSession)))

	mux.Handle("GET /staff", protect(http.HandlerFunc(handlers.Staff.List)))
	mux.Handle("POST /staff", protect(http.HandlerFunc(handlers.Staff.Create)))
	mux.Handle("GET /staff/{id}", protect(http.HandlerFunc(handlers.Staff.Get)))
	mux.Handle("PUT /staff/{id}", protect(http.HandlerFunc(handlers.Staff.Update)))
	mux.Handle("DELETE /staff/{id}", protect(http.HandlerFunc(handlers.Staff.Delete)))
	mux.Handle("POST /staff/{id}/deactivate", protect(http.HandlerFunc(handlers.Staff.Deactivate)))

	mux.Handle("GET /staff/{id}/hours", protect(http.HandlerFunc(handlers.Schedule.WeeklyHours)))
	mux.Handle("GET /staff/{id}/hours/{weekday}", protect(http.HandlerFunc(handlers.Schedule.WeekdayHours)))
	mux.Handle("PUT /staff/{id}/hours/{weekday}", protect(http.HandlerFunc(handlers.Schedule.ReplaceWeekdayHours)))
	mux.Handle("GET /staff/{id}/windows", protect(http.HandlerFunc(handlers.Schedule.Windows)))
	mux.Handle("GET /staff/{id}/exceptions", protect(http.HandlerFunc(handlers.Schedule.ListExceptions)))
	mux.Handle("POST /staff/{id}/exceptions", protect(http.HandlerFunc(handlers.Schedule.AddException)))
	mux.Handle("DELETE /staff/{id}/exceptions/{excID}", protect(http.HandlerFunc(handlers.Schedule.DeleteException)))

	return RequestLogger(logger)(mux)
}
