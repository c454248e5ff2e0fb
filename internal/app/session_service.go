package app

import (
	"context"
	"time"

	"github.com/courtside/pickup-api/internal/clock"
	"github.com/courtside/pickup-api/internal/domain"
	"github.com/google/uuid"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSession(ctx context.Context, sessionID string) (domain.Session, error)
}

type SessionService struct {
	repo  SessionRepository
	clock clock.Clock
}

func NewSessionService(repo SessionRepository, clk clock.Clock) *SessionService {
	return &SessionService{
		repo:  repo,
		clock: clk,
	}
}

type CreateSessionInput struct {
	Title           string
	Sport           string
	StartsAt        time.Time
	MaxParticipants *int
}

func (s *SessionService) Create(ctx context.Context, in CreateSessionInput) (domain.Session, error) {
	if in.Title == "" {
		return domain.Session{}, domain.ErrTitleRequired
	}
	if in.StartsAt.IsZero() {
		return domain.Session{}, domain.ErrInvalidStartsAt
	}
	if in.MaxParticipants != nil && *in.MaxParticipants <= 0 {
		return domain.Session{}, domain.ErrInvalidCapacity
	}

	session := domain.Session{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Sport:           in.Sport,
		StartsAt:        in.StartsAt,
		MaxParticipants: in.MaxParticipants,
		CreatedAt:       s.clock.Now(),
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	if sessionID == "" {
		return domain.Session{}, domain.ErrInvalidID
	}
	return s.repo.GetSession(ctx, sessionID)
}
