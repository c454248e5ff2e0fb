package app

import (
	"context"
	"testing"
	"time"

	"github.com/courtside/pickup-api/internal/clock"
	"github.com/courtside/pickup-api/internal/domain"
)

func TestSessionService_Create(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	startsAt := now.Add(24 * time.Hour)

	t.Run("creates session", func(t *testing.T) {
		repo := &fakeSessionRepo{sessions: map[string]domain.Session{}}
		svc := NewSessionService(repo, clock.NewFixed(now))

		session, err := svc.Create(context.Background(), CreateSessionInput{
			Title:           "Sunday 5v5",
			Sport:           "basketball",
			StartsAt:        startsAt,
			MaxParticipants: intPtr(10),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if session.ID == "" {
			t.Fatalf("expected session ID to be set")
		}
		if !session.CreatedAt.Equal(now) {
			t.Fatalf("expected created_at %v, got %v", now, session.CreatedAt)
		}
		if len(repo.sessions) != 1 {
			t.Fatalf("expected 1 session stored, got %d", len(repo.sessions))
		}
	})

	t.Run("missing title", func(t *testing.T) {
		svc := NewSessionService(&fakeSessionRepo{sessions: map[string]domain.Session{}}, clock.NewFixed(now))

		_, err := svc.Create(context.Background(), CreateSessionInput{StartsAt: startsAt})
		if err != domain.ErrTitleRequired {
			t.Fatalf("expected ErrTitleRequired, got %v", err)
		}
	})

	t.Run("zero starts_at", func(t *testing.T) {
		svc := NewSessionService(&fakeSessionRepo{sessions: map[string]domain.Session{}}, clock.NewFixed(now))

		_, err := svc.Create(context.Background(), CreateSessionInput{Title: "x"})
		if err != domain.ErrInvalidStartsAt {
			t.Fatalf("expected ErrInvalidStartsAt, got %v", err)
		}
	})

	t.Run("non-positive capacity", func(t *testing.T) {
		svc := NewSessionService(&fakeSessionRepo{sessions: map[string]domain.Session{}}, clock.NewFixed(now))

		_, err := svc.Create(context.Background(), CreateSessionInput{
			Title:           "x",
			StartsAt:        startsAt,
			MaxParticipants: intPtr(0),
		})
		if err != domain.ErrInvalidCapacity {
			t.Fatalf("expected ErrInvalidCapacity, got %v", err)
		}
	})
}

func TestSessionService_Get(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("empty id", func(t *testing.T) {
		svc := NewSessionService(&fakeSessionRepo{sessions: map[string]domain.Session{}}, clock.NewFixed(now))

		_, err := svc.Get(context.Background(), "")
		if err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("missing session", func(t *testing.T) {
		svc := NewSessionService(&fakeSessionRepo{sessions: map[string]domain.Session{}}, clock.NewFixed(now))

		_, err := svc.Get(context.Background(), "missing")
		if err != domain.ErrSessionNotFound {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})
}

type fakeSessionRepo struct {
	sessions map[string]domain.Session
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, session domain.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetSession(_ context.Context, sessionID string) (domain.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return session, nil
}
