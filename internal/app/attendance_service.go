package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/courtside/pickup-api/internal/clock"
	"github.com/courtside/pickup-api/internal/domain"
	"github.com/google/uuid"
)

type AttendanceRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetSessionForUpdate(ctx context.Context, sessionID string) (domain.Session, error)
	CountAttendance(ctx context.Context, sessionID string) (int, error)
	FindAttendance(ctx context.Context, sessionID, userID string) (*domain.AttendanceRecord, error)
	CreateAttendance(ctx context.Context, rec domain.AttendanceRecord) error
	DeleteAttendance(ctx context.Context, sessionID, userID string) (bool, error)
	UpdateAttendanceStatus(ctx context.Context, sessionID, userID string, status domain.AttendanceStatus, attendedAt *time.Time) (bool, error)
	DeleteWaitlistEntry(ctx context.Context, sessionID, userID string) (bool, error)
	NextWaitlistEntry(ctx context.Context, sessionID string) (*domain.WaitlistEntry, error)
	MarkWaitlistNotified(ctx context.Context, entryID int64, notifiedAt time.Time) error
	CreateNotification(ctx context.Context, n domain.Notification) error
}

type AttendanceService struct {
	repo      AttendanceRepository
	clock     clock.Clock
	txTimeout time.Duration
}

const defaultTxTimeout = 10 * time.Second

func NewAttendanceService(repo AttendanceRepository, clk clock.Clock, opts ...AttendanceServiceOption) *AttendanceService {
	svc := &AttendanceService{
		repo:      repo,
		clock:     clk,
		txTimeout: defaultTxTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type AttendanceServiceOption func(*AttendanceService)

// WithTxTimeout overrides the ceiling on both the wait for a transaction
// slot and the transaction execution itself.
func WithTxTimeout(d time.Duration) AttendanceServiceOption {
	return func(s *AttendanceService) {
		if d > 0 {
			s.txTimeout = d
		}
	}
}

// Join registers the user on the session. The capacity check and the insert
// commit as one atomically visible unit: the session row is locked for the
// duration, so two concurrent joins against the last free slot cannot both
// observe it as available. A duplicate insert that slips past the existence
// check loses to the (session_id, user_id) unique constraint and surfaces as
// ErrAlreadyJoined, same as the precondition it duplicates.
func (s *AttendanceService) Join(ctx context.Context, sessionID, userID string) (domain.AttendanceRecord, error) {
	now := s.clock.Now()
	var result domain.AttendanceRecord

	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		session, err := s.repo.GetSessionForUpdate(txCtx, sessionID)
		if err != nil {
			return err
		}
		if !session.Upcoming(now) {
			return domain.ErrSessionPast
		}

		if session.MaxParticipants != nil {
			count, err := s.repo.CountAttendance(txCtx, sessionID)
			if err != nil {
				return err
			}
			if count >= *session.MaxParticipants {
				return domain.ErrSessionFull
			}
		}

		existing, err := s.repo.FindAttendance(txCtx, sessionID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyJoined
		}

		rec := domain.AttendanceRecord{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			UserID:    userID,
			Status:    domain.AttendanceStatusRegistered,
			MarkedAt:  now,
		}
		if err := s.repo.CreateAttendance(txCtx, rec); err != nil {
			return err
		}

		// A user who joins directly should not linger on the queue.
		if _, err := s.repo.DeleteWaitlistEntry(txCtx, sessionID, userID); err != nil {
			return err
		}

		result = rec
		return nil
	})
	if err != nil {
		return domain.AttendanceRecord{}, mapTimeout(err)
	}
	return result, nil
}

type CancelResult struct {
	Promoted       bool
	PromotedUserID string
}

// Cancel removes the user's attendance and, when the session is still
// upcoming, promotes the earliest non-notified waitlist entry: the entry is
// marked notified and exactly one notification record is written, both in
// the same transaction as the delete. The freed slot is not reserved for the
// promoted user; they go through Join like anyone else.
func (s *AttendanceService) Cancel(ctx context.Context, sessionID, userID string) (CancelResult, error) {
	now := s.clock.Now()
	var result CancelResult

	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		session, err := s.repo.GetSessionForUpdate(txCtx, sessionID)
		if err != nil {
			return err
		}

		deleted, err := s.repo.DeleteAttendance(txCtx, sessionID, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrAttendanceNotFound
		}

		if !session.Upcoming(now) {
			// Nobody to notify for a session that already happened.
			result = CancelResult{}
			return nil
		}

		entry, err := s.repo.NextWaitlistEntry(txCtx, sessionID)
		if err != nil {
			return err
		}
		if entry == nil {
			result = CancelResult{}
			return nil
		}

		if err := s.repo.MarkWaitlistNotified(txCtx, entry.ID, now); err != nil {
			return err
		}
		if err := s.repo.CreateNotification(txCtx, slotAvailableNotification(entry.UserID, session, now)); err != nil {
			return err
		}

		result = CancelResult{Promoted: true, PromotedUserID: entry.UserID}
		return nil
	})
	if err != nil {
		return CancelResult{}, mapTimeout(err)
	}
	return result, nil
}

// MarkStatus records post-session bookkeeping for an attendee
// (showed up or not). Registered is the insert-time status and not a
// valid target.
func (s *AttendanceService) MarkStatus(ctx context.Context, sessionID, userID string, status domain.AttendanceStatus) error {
	if !status.Valid() || status == domain.AttendanceStatusRegistered {
		return domain.ErrInvalidStatus
	}

	now := s.clock.Now()
	var attendedAt *time.Time
	if status == domain.AttendanceStatusAttended {
		attendedAt = &now
	}

	updated, err := s.repo.UpdateAttendanceStatus(ctx, sessionID, userID, status, attendedAt)
	if err != nil {
		return err
	}
	if !updated {
		return domain.ErrAttendanceNotFound
	}
	return nil
}

func slotAvailableNotification(userID string, session domain.Session, now time.Time) domain.Notification {
	return domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      domain.NotificationTypeSlotAvailable,
		Title:     "A spot opened up",
		Message:   fmt.Sprintf("A spot opened up in %s on %s. Join now before it fills up again.", session.Title, session.StartsAt.Format("Jan 2 at 15:04")),
		Link:      "/sessions/" + session.ID,
		CreatedAt: now,
	}
}

func mapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTransactionTimeout
	}
	return err
}
