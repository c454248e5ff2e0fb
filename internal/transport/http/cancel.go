package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/courtside/pickup-api/internal/app"
	"github.com/courtside/pickup-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// AttendanceCanceler is the minimal interface needed to cancel attendance.
type AttendanceCanceler interface {
	Cancel(ctx context.Context, sessionID, userID string) (app.CancelResult, error)
}

// HandleCancel returns an HTTP handler for cancelling attendance. The
// response reports whether a waitlisted user was notified for the freed
// slot; the slot itself is not held for them.
func HandleCancel(svc AttendanceCanceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "no identity")
			return
		}
		sessionID := chi.URLParam(r, "sessionID")

		res, err := svc.Cancel(r.Context(), sessionID, userID)
		if err != nil {
			switch err {
			case domain.ErrSessionNotFound:
				writeError(w, http.StatusNotFound, codeSessionNotFound, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrAttendanceNotFound:
				writeError(w, http.StatusNotFound, codeAttendanceNotFound, err.Error())
			case domain.ErrTransactionTimeout:
				writeRetryable(w, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := cancelResponse{
			WaitlistNotified: res.Promoted,
			PromotedUserID:   res.PromotedUserID,
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type cancelResponse struct {
	WaitlistNotified bool   `json:"waitlistNotified"`
	PromotedUserID   string `json:"promotedUserId,omitempty"`
}
