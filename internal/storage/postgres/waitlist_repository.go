package postgres

import (
	"context"
	"fmt"

	"github.com/courtside/pickup-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WaitlistRepository struct {
	pool *pgxpool.Pool
}

func NewWaitlistRepository(pool *pgxpool.Pool) *WaitlistRepository {
	return &WaitlistRepository{pool: pool}
}

func (r *WaitlistRepository) CreateWaitlistEntry(ctx context.Context, entry domain.WaitlistEntry) (domain.WaitlistEntry, error) {
	const stmt = `
INSERT INTO waitlist_entries (session_id, user_id, created_at)
VALUES ($1, $2, $3)
RETURNING id`

	err := r.queryRow(ctx, stmt, entry.SessionID, entry.UserID, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.WaitlistEntry{}, domain.ErrAlreadyOnWaitlist
		}
		if isForeignKeyViolation(err) {
			return domain.WaitlistEntry{}, domain.ErrSessionNotFound
		}
		if isInvalidUUID(err) {
			return domain.WaitlistEntry{}, domain.ErrInvalidID
		}
		return domain.WaitlistEntry{}, fmt.Errorf("create waitlist entry: %w", err)
	}
	return entry, nil
}

// WaitlistPosition computes the 1-based rank of an entry in (created_at, id)
// order. Advisory only; it can go stale the moment another entry is removed.
func (r *WaitlistRepository) WaitlistPosition(ctx context.Context, entryID int64, sessionID string) (int, error) {
	const query = `
SELECT COUNT(*)
FROM waitlist_entries
WHERE session_id = $2
  AND (created_at, id) <= (SELECT created_at, id FROM waitlist_entries WHERE id = $1)`

	var pos int
	if err := r.queryRow(ctx, query, entryID, sessionID).Scan(&pos); err != nil {
		return 0, fmt.Errorf("waitlist position: %w", err)
	}
	return pos, nil
}

func (r *WaitlistRepository) DeleteWaitlistEntry(ctx context.Context, sessionID, userID string) (bool, error) {
	const stmt = `DELETE FROM waitlist_entries WHERE session_id = $1 AND user_id = $2`

	tag, err := r.exec(ctx, stmt, sessionID, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("delete waitlist entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *WaitlistRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *WaitlistRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
