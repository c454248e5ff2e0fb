package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/courtside/pickup-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// AttendanceMarker is the minimal interface needed for post-session
// attendance bookkeeping.
type AttendanceMarker interface {
	MarkStatus(ctx context.Context, sessionID, userID string, status domain.AttendanceStatus) error
}

// HandleMarkAttendance returns an HTTP handler for marking an attendee as
// attended or no-show after the session.
func HandleMarkAttendance(svc AttendanceMarker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		userID := chi.URLParam(r, "userID")

		var req markAttendanceRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		err := svc.MarkStatus(r.Context(), sessionID, userID, domain.AttendanceStatus(req.Status))
		if err != nil {
			switch err {
			case domain.ErrInvalidStatus:
				writeError(w, http.StatusBadRequest, codeInvalidStatus, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrAttendanceNotFound:
				writeError(w, http.StatusNotFound, codeAttendanceNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": req.Status})
	}
}

type markAttendanceRequest struct {
	Status string `json:"status"`
}
