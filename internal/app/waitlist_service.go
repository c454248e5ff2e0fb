package app

import (
	"context"

	"github.com/courtside/pickup-api/internal/clock"
	"github.com/courtside/pickup-api/internal/domain"
)

type WaitlistRepository interface {
	CreateWaitlistEntry(ctx context.Context, entry domain.WaitlistEntry) (domain.WaitlistEntry, error)
	WaitlistPosition(ctx context.Context, entryID int64, sessionID string) (int, error)
	DeleteWaitlistEntry(ctx context.Context, sessionID, userID string) (bool, error)
}

type WaitlistService struct {
	repo  WaitlistRepository
	clock clock.Clock
}

func NewWaitlistService(repo WaitlistRepository, clk clock.Clock) *WaitlistService {
	return &WaitlistService{
		repo:  repo,
		clock: clk,
	}
}

// Join appends the user to the session's queue. The queue is unbounded and
// joining does not require the session to be full. The returned Position is
// a display hint; promotion order in Cancel follows (created_at, id), never
// this number.
func (s *WaitlistService) Join(ctx context.Context, sessionID, userID string) (domain.WaitlistEntry, error) {
	entry, err := s.repo.CreateWaitlistEntry(ctx, domain.WaitlistEntry{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return domain.WaitlistEntry{}, err
	}

	pos, err := s.repo.WaitlistPosition(ctx, entry.ID, sessionID)
	if err != nil {
		return domain.WaitlistEntry{}, err
	}
	entry.Position = pos
	return entry, nil
}

// Leave removes the user's entry. No promotion side effects.
func (s *WaitlistService) Leave(ctx context.Context, sessionID, userID string) error {
	deleted, err := s.repo.DeleteWaitlistEntry(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotOnWaitlist
	}
	return nil
}
