package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterConfig bundles the dependencies the HTTP surface needs.
type RouterConfig struct {
	Sessions   SessionManager
	Attendance AttendanceService
	Waitlist   WaitlistManager

	JWTSecret   []byte
	CORSOrigins []string
	Logger      *log.Logger
}

// AttendanceService combines the attendance operations one service exposes.
type AttendanceService interface {
	SessionJoiner
	AttendanceCanceler
	AttendanceMarker
}

// NewRouter assembles the chi router with the full middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(CORS(cfg.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", HealthHandler)

	r.Group(func(r chi.Router) {
		r.Use(Auth(cfg.JWTSecret))

		r.Post("/sessions", HandleCreateSession(cfg.Sessions))
		r.Get("/sessions/{sessionID}", HandleGetSession(cfg.Sessions))

		r.Post("/sessions/{sessionID}/join", HandleJoin(cfg.Attendance))
		r.Post("/sessions/{sessionID}/cancel", HandleCancel(cfg.Attendance))
		r.Patch("/sessions/{sessionID}/attendance/{userID}", HandleMarkAttendance(cfg.Attendance))

		r.Post("/sessions/{sessionID}/waitlist", HandleWaitlistJoin(cfg.Waitlist))
		r.Delete("/sessions/{sessionID}/waitlist", HandleWaitlistLeave(cfg.Waitlist))
	})

	return r
}
