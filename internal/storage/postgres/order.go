package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dulcecodigo/storefront/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

const orderColumns = `id, user_id, customer_name, customer_email, customer_phone,
	address, items, total, status, points_earned, points_used, email_sent,
	created_at, updated_at`

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. The database assigns the id and both
// timestamps; the stored row is returned.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO orders (user_id, customer_name, customer_email, customer_phone,
			address, items, total, status, points_earned, points_used)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+orderColumns,
		o.UserID, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.Address, string(o.Items), o.Total, string(o.Status), o.PointsEarned, o.PointsUsed,
	)

	created, err := scanOrder(row)
	if err != nil {
		return nil, errors.Wrap(err, "insert order")
	}
	return created, nil
}

// Get returns a single order by id.
func (r *OrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrap(err, "select order")
	}
	return o, nil
}

// List returns all orders, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select orders")
	}
	defer rows.Close()

	return collectOrders(rows)
}

// ListForUser returns a user's orders, newest first.
func (r *OrderRepository) ListForUser(ctx context.Context, userID int64) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, errors.Wrap(err, "select user orders")
	}
	defer rows.Close()

	return collectOrders(rows)
}

// UpdateStatus persists a new status and refreshes updated_at.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status) (*order.Order, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+orderColumns,
		id, string(status))

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrap(err, "update order status")
	}
	return o, nil
}

// MarkNotified records that the confirmation email went out.
func (r *OrderRepository) MarkNotified(ctx context.Context, id int64) (*order.Order, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE orders SET email_sent = TRUE WHERE id = $1 RETURNING `+orderColumns,
		id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrap(err, "mark order notified")
	}
	return o, nil
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var (
		o      order.Order
		items  string
		status string
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.Address, &items, &o.Total, &status, &o.PointsEarned, &o.PointsUsed,
		&o.EmailSent, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Items = []byte(items)
	o.Status = order.Status(status)
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]order.Order, error) {
	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan order")
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate orders")
	}
	return orders, nil
}
