package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/courtside/pickup-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// WaitlistManager is the minimal interface needed for waitlist membership.
type WaitlistManager interface {
	Join(ctx context.Context, sessionID, userID string) (domain.WaitlistEntry, error)
	Leave(ctx context.Context, sessionID, userID string) error
}

// HandleWaitlistJoin returns an HTTP handler for joining a session's
// waitlist. The returned position is a display hint, not a promise.
func HandleWaitlistJoin(svc WaitlistManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "no identity")
			return
		}
		sessionID := chi.URLParam(r, "sessionID")

		entry, err := svc.Join(r.Context(), sessionID, userID)
		if err != nil {
			switch err {
			case domain.ErrSessionNotFound:
				writeError(w, http.StatusNotFound, codeSessionNotFound, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrAlreadyOnWaitlist:
				writeError(w, http.StatusConflict, codeAlreadyOnWaitlist, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := waitlistEntryResponse{
			SessionID: entry.SessionID,
			UserID:    entry.UserID,
			Position:  entry.Position,
			CreatedAt: entry.CreatedAt,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleWaitlistLeave returns an HTTP handler for leaving a waitlist.
func HandleWaitlistLeave(svc WaitlistManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "no identity")
			return
		}
		sessionID := chi.URLParam(r, "sessionID")

		if err := svc.Leave(r.Context(), sessionID, userID); err != nil {
			switch err {
			case domain.ErrNotOnWaitlist:
				writeError(w, http.StatusNotFound, codeNotOnWaitlist, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"removed": true})
	}
}

type waitlistEntryResponse struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
