package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/courtside/pickup-api/internal/app"
	"github.com/courtside/pickup-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// SessionManager is the minimal interface needed for session endpoints.
type SessionManager interface {
	Create(ctx context.Context, in app.CreateSessionInput) (domain.Session, error)
	Get(ctx context.Context, sessionID string) (domain.Session, error)
}

// HandleCreateSession returns an HTTP handler for creating sessions.
func HandleCreateSession(svc SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidStartsAt, "invalid starts_at format")
			return
		}

		session, err := svc.Create(r.Context(), app.CreateSessionInput{
			Title:           req.Title,
			Sport:           req.Sport,
			StartsAt:        startsAt,
			MaxParticipants: req.MaxParticipants,
		})
		if err != nil {
			switch err {
			case domain.ErrTitleRequired:
				writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
			case domain.ErrInvalidCapacity:
				writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
			case domain.ErrInvalidStartsAt:
				writeError(w, http.StatusBadRequest, codeInvalidStartsAt, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(sessionToResponse(session))
	}
}

// HandleGetSession returns an HTTP handler for reading a single session.
func HandleGetSession(svc SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		session, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			switch err {
			case domain.ErrSessionNotFound, domain.ErrInvalidID:
				writeError(w, http.StatusNotFound, codeSessionNotFound, domain.ErrSessionNotFound.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sessionToResponse(session))
	}
}

type createSessionRequest struct {
	Title           string `json:"title"`
	Sport           string `json:"sport"`
	StartsAt        string `json:"starts_at"`
	MaxParticipants *int   `json:"max_participants"`
}

type sessionResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Sport           string    `json:"sport"`
	StartsAt        time.Time `json:"starts_at"`
	MaxParticipants *int      `json:"max_participants"`
	CreatedAt       time.Time `json:"created_at"`
}

func sessionToResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		ID:              s.ID,
		Title:           s.Title,
		Sport:           s.Sport,
		StartsAt:        s.StartsAt,
		MaxParticipants: s.MaxParticipants,
		CreatedAt:       s.CreatedAt,
	}
}
