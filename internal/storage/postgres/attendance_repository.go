package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/pickup-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

func (r *AttendanceRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *AttendanceRepository) GetSessionForUpdate(ctx context.Context, sessionID string) (domain.Session, error) {
	const query = `
SELECT id, title, sport, starts_at, max_participants, created_at
FROM sessions
WHERE id = $1
FOR UPDATE`

	var s domain.Session
	err := r.queryRow(ctx, query, sessionID).
		Scan(&s.ID, &s.Title, &s.Sport, &s.StartsAt, &s.MaxParticipants, &s.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Session{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

func (r *AttendanceRepository) CountAttendance(ctx context.Context, sessionID string) (int, error) {
	const query = `SELECT COUNT(*) FROM attendance_records WHERE session_id = $1`

	var count int
	if err := r.queryRow(ctx, query, sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return count, nil
}

func (r *AttendanceRepository) FindAttendance(ctx context.Context, sessionID, userID string) (*domain.AttendanceRecord, error) {
	const query = `
SELECT id, session_id, user_id, status, marked_at, attended_at
FROM attendance_records
WHERE session_id = $1 AND user_id = $2`

	var rec domain.AttendanceRecord
	var status string
	err := r.queryRow(ctx, query, sessionID, userID).
		Scan(&rec.ID, &rec.SessionID, &rec.UserID, &status, &rec.MarkedAt, &rec.AttendedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	rec.Status = domain.AttendanceStatus(status)
	return &rec, nil
}

func (r *AttendanceRepository) CreateAttendance(ctx context.Context, rec domain.AttendanceRecord) error {
	const stmt = `
INSERT INTO attendance_records (id, session_id, user_id, status, marked_at, attended_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		rec.ID,
		rec.SessionID,
		rec.UserID,
		rec.Status,
		rec.MarkedAt,
		rec.AttendedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyJoined
		}
		if isForeignKeyViolation(err) {
			return domain.ErrSessionNotFound
		}
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) DeleteAttendance(ctx context.Context, sessionID, userID string) (bool, error) {
	const stmt = `DELETE FROM attendance_records WHERE session_id = $1 AND user_id = $2`

	tag, err := r.exec(ctx, stmt, sessionID, userID)
	if err != nil {
		return false, fmt.Errorf("delete attendance: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AttendanceRepository) UpdateAttendanceStatus(ctx context.Context, sessionID, userID string, status domain.AttendanceStatus, attendedAt *time.Time) (bool, error) {
	const stmt = `
UPDATE attendance_records
SET status = $3, attended_at = $4
WHERE session_id = $1 AND user_id = $2`

	tag, err := r.exec(ctx, stmt, sessionID, userID, status, attendedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("update attendance status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AttendanceRepository) DeleteWaitlistEntry(ctx context.Context, sessionID, userID string) (bool, error) {
	const stmt = `DELETE FROM waitlist_entries WHERE session_id = $1 AND user_id = $2`

	tag, err := r.exec(ctx, stmt, sessionID, userID)
	if err != nil {
		return false, fmt.Errorf("delete waitlist entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// NextWaitlistEntry returns the earliest non-notified entry. Ordering is
// (created_at, id): the serial id keeps the order strictly total when
// created_at values coincide.
func (r *AttendanceRepository) NextWaitlistEntry(ctx context.Context, sessionID string) (*domain.WaitlistEntry, error) {
	const query = `
SELECT id, session_id, user_id, notified, notified_at, created_at
FROM waitlist_entries
WHERE session_id = $1 AND notified = FALSE
ORDER BY created_at, id
LIMIT 1
FOR UPDATE`

	var e domain.WaitlistEntry
	err := r.queryRow(ctx, query, sessionID).
		Scan(&e.ID, &e.SessionID, &e.UserID, &e.Notified, &e.NotifiedAt, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("next waitlist entry: %w", err)
	}
	return &e, nil
}

func (r *AttendanceRepository) MarkWaitlistNotified(ctx context.Context, entryID int64, notifiedAt time.Time) error {
	const stmt = `UPDATE waitlist_entries SET notified = TRUE, notified_at = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, entryID, notifiedAt)
	if err != nil {
		return fmt.Errorf("mark waitlist notified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotOnWaitlist
	}
	return nil
}

func (r *AttendanceRepository) CreateNotification(ctx context.Context, n domain.Notification) error {
	const stmt = `
INSERT INTO notifications (id, user_id, type, title, message, link, read, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		n.ID,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		n.Link,
		n.Read,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *AttendanceRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
