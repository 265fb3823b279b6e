package postgres

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"

	"github.com/dulcecodigo/storefront/internal/domain/loyalty"
	"github.com/dulcecodigo/storefront/internal/domain/user"
)

var _ loyalty.Repository = (*LoyaltyRepository)(nil)

// LoyaltyRepository implements loyalty.Repository backed by PostgreSQL.
type LoyaltyRepository struct {
	pool *pgxpool.Pool
}

// NewLoyaltyRepository returns a LoyaltyRepository that uses the given pool.
func NewLoyaltyRepository(pool *pgxpool.Pool) *LoyaltyRepository {
	return &LoyaltyRepository{pool: pool}
}

// CreditEarned appends an 'earned' ledger entry and bumps the cached balance
// in one transaction. The user row is locked for the duration so concurrent
// orders for the same user serialize instead of losing updates. The unique
// index on (order_id, type) makes the credit idempotent per order: a repeat
// call inserts nothing and leaves the balance untouched.
//
// Serialization failures and deadlocks are retried with backoff.
func (r *LoyaltyRepository) CreditEarned(ctx context.Context, userID, orderID, points int64, description string) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := r.creditOnce(ctx, userID, orderID, points, description)
		if isRetryablePgError(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (r *LoyaltyRepository) creditOnce(ctx context.Context, userID, orderID, points int64, description string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx,
		`SELECT loyalty_points FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrNotFound
		}
		return errors.Wrap(err, "lock user row")
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO loyalty_history (user_id, order_id, points, type, description)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (order_id, type) WHERE order_id IS NOT NULL DO NOTHING`,
		userID, orderID, points, string(loyalty.EntryEarned), description,
	)
	if err != nil {
		return errors.Wrap(err, "append ledger entry")
	}

	// Conflict means this order was already credited; commit without
	// touching the balance.
	if tag.RowsAffected() == 1 {
		_, err = tx.Exec(ctx,
			`UPDATE users SET loyalty_points = loyalty_points + $2 WHERE id = $1`,
			userID, points,
		)
		if err != nil {
			return errors.Wrap(err, "update cached balance")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}

// ListForUser returns a user's ledger entries, newest first.
func (r *LoyaltyRepository) ListForUser(ctx context.Context, userID int64) ([]loyalty.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, order_id, points, type, description, created_at
		 FROM loyalty_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "select loyalty history")
	}
	defer rows.Close()

	var entries []loyalty.HistoryEntry
	for rows.Next() {
		var (
			e         loyalty.HistoryEntry
			entryType string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.OrderID, &e.Points, &entryType, &e.Description, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan loyalty entry")
		}
		e.Type = loyalty.EntryType(entryType)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate loyalty history")
	}
	return entries, nil
}

// isRetryablePgError reports whether the error is a transient conflict that
// a fresh transaction can resolve.
func isRetryablePgError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure ||
		pgErr.Code == pgerrcode.DeadlockDetected
}
