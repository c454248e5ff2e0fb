package postgres

import (
	"context"
	"errors"

	"github.com/courtside/pickup-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type txKey struct{}

// Ceilings on waiting for row locks and on any single statement inside a
// transaction. Exceeding either aborts the transaction with a retryable
// error instead of hanging the caller.
const (
	lockTimeoutSQL      = `SET LOCAL lock_timeout = '10s'`
	statementTimeoutSQL = `SET LOCAL statement_timeout = '10s'`
)

// withTx runs fn inside a serializable transaction, with the transaction
// carried through the context so repository methods executed by fn share it.
// Serializable isolation is what makes the capacity predicate safe: two
// transactions that both counted attendance below the maximum cannot both
// commit their inserts. Any error from fn rolls the transaction back;
// serialization failures, deadlocks and timeout aborts surface as
// domain.ErrTransactionTimeout so callers know to retry.
func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return mapTxError(err)
	}

	if _, err := tx.Exec(ctx, lockTimeoutSQL); err != nil {
		_ = tx.Rollback(ctx)
		return mapTxError(err)
	}
	if _, err := tx.Exec(ctx, statementTimeoutSQL); err != nil {
		_ = tx.Rollback(ctx)
		return mapTxError(err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		// Under serializable isolation the conflict can show up at commit.
		return mapTxError(err)
	}
	return nil
}

func txFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

func mapTxError(err error) error {
	if isRetryable(err) || errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTransactionTimeout
	}
	return err
}

// isRetryable matches the transient abort classes: serialization failure,
// deadlock, lock wait timeout, statement timeout.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "55P03", "57014":
		return true
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
