package postgres

import (
	"context"
	"fmt"

	"github.com/courtside/pickup-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) CreateSession(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, title, sport, starts_at, max_participants, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, stmt,
		session.ID,
		session.Title,
		session.Sport,
		session.StartsAt,
		session.MaxParticipants,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	const query = `
SELECT id, title, sport, starts_at, max_participants, created_at
FROM sessions
WHERE id = $1`

	var s domain.Session
	err := r.pool.QueryRow(ctx, query, sessionID).
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
