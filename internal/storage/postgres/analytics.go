package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dulcecodigo/storefront/internal/domain/analytics"
	"github.com/dulcecodigo/storefront/internal/domain/order"
)

var _ analytics.Repository = (*AnalyticsRepository)(nil)

// AnalyticsRepository implements analytics.Repository backed by PostgreSQL.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository returns an AnalyticsRepository that uses the given
// pool.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// RecordEvent inserts a tracked event.
func (r *AnalyticsRepository) RecordEvent(ctx context.Context, e *analytics.Event) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO analytics_events (event_type, metadata, user_agent, ip_address)
		 VALUES ($1, $2, $3, $4)`,
		e.Type, e.Metadata, e.UserAgent, e.IPAddress,
	)
	if err != nil {
		return errors.Wrap(err, "insert analytics event")
	}
	return nil
}

// Summary computes the dashboard aggregate. Cancelled orders are excluded
// from order counts and revenue but still appear in the per-status
// breakdown.
func (r *AnalyticsRepository) Summary(ctx context.Context) (*analytics.Summary, error) {
	s := &analytics.Summary{TotalRevenue: decimal.Zero}

	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM orders WHERE status <> $1),
			(SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> $1),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM products)`,
		string(order.StatusCancelled),
	).Scan(&s.TotalOrders, &s.TotalRevenue, &s.TotalUsers, &s.TotalProducts)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate totals")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM orders GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, errors.Wrap(err, "orders by status")
	}
	defer rows.Close()

	for rows.Next() {
		var sc analytics.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, errors.Wrap(err, "scan status count")
		}
		s.OrdersByStatus = append(s.OrdersByStatus, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate status counts")
	}

	daily, err := r.dailyStats(ctx)
	if err != nil {
		return nil, err
	}
	s.DailyStats = daily

	return s, nil
}

// dailyStats returns one row per day for the last 7 days, zero-filled for
// days without orders.
func (r *AnalyticsRepository) dailyStats(ctx context.Context) ([]analytics.DailyStat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT to_char(d.day, 'YYYY-MM-DD'),
			COUNT(o.id),
			COALESCE(SUM(o.total), 0)
		 FROM generate_series(
			date_trunc('day', now()) - interval '6 days',
			date_trunc('day', now()),
			interval '1 day') AS d(day)
		 LEFT JOIN orders o
			ON date_trunc('day', o.created_at) = d.day AND o.status <> $1
		 GROUP BY d.day
		 ORDER BY d.day`,
		string(order.StatusCancelled),
	)
	if err != nil {
		return nil, errors.Wrap(err, "daily stats")
	}
	defer rows.Close()

	var stats []analytics.DailyStat
	for rows.Next() {
		var ds analytics.DailyStat
		if err := rows.Scan(&ds.Date, &ds.Orders, &ds.Revenue); err != nil {
			return nil, errors.Wrap(err, "scan daily stat")
		}
		stats = append(stats, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate daily stats")
	}
	return stats, nil
}
