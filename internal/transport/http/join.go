package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/courtside/pickup-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// SessionJoiner is the minimal interface needed to join a session.
type SessionJoiner interface {
	Join(ctx context.Context, sessionID, userID string) (domain.AttendanceRecord, error)
}

// HandleJoin returns an HTTP handler for joining a session.
func HandleJoin(svc SessionJoiner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "no identity")
			return
		}
		sessionID := chi.URLParam(r, "sessionID")

		rec, err := svc.Join(r.Context(), sessionID, userID)
		if err != nil {
			switch err {
			case domain.ErrSessionNotFound:
				writeError(w, http.StatusNotFound, codeSessionNotFound, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrSessionPast:
				writeError(w, http.StatusBadRequest, codeSessionPast, err.Error())
			case domain.ErrSessionFull:
				writeError(w, http.StatusBadRequest, codeSessionFull, err.Error())
			case domain.ErrAlreadyJoined:
				writeError(w, http.StatusBadRequest, codeAlreadyJoined, err.Error())
			case domain.ErrTransactionTimeout:
				writeRetryable(w, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := attendanceResponse{
			ID:        rec.ID,
			SessionID: rec.SessionID,
			UserID:    rec.UserID,
			Status:    string(rec.Status),
			MarkedAt:  rec.MarkedAt,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type attendanceResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	MarkedAt  time.Time `json:"marked_at"`
}
