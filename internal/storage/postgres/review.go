package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dulcecodigo/storefront/internal/domain/review"
)

var _ review.Repository = (*ReviewRepository)(nil)

const reviewColumns = `id, customer_name, rating, comment, location, is_approved, created_at`

// ReviewRepository implements review.Repository backed by PostgreSQL.
type ReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository returns a ReviewRepository that uses the given pool.
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// List returns all reviews, newest first.
func (r *ReviewRepository) List(ctx context.Context) ([]review.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select reviews")
	}
	defer rows.Close()

	return collectReviews(rows)
}

// ListApproved returns moderated reviews, newest first.
func (r *ReviewRepository) ListApproved(ctx context.Context) ([]review.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE is_approved ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select approved reviews")
	}
	defer rows.Close()

	return collectReviews(rows)
}

// Create inserts a new, unapproved review.
func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) (*review.Review, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO reviews (customer_name, rating, comment, location)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+reviewColumns,
		rv.CustomerName, rv.Rating, rv.Comment, rv.Location,
	)

	created, err := scanReview(row)
	if err != nil {
		return nil, errors.Wrap(err, "insert review")
	}
	return created, nil
}

// Approve marks a review as moderated.
func (r *ReviewRepository) Approve(ctx context.Context, id int64) (*review.Review, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE reviews SET is_approved = TRUE WHERE id = $1 RETURNING `+reviewColumns,
		id)

	rv, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, review.ErrNotFound
		}
		return nil, errors.Wrap(err, "approve review")
	}
	return rv, nil
}

// Delete removes a review.
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete review")
	}
	if tag.RowsAffected() == 0 {
		return review.ErrNotFound
	}
	return nil
}

func scanReview(row pgx.Row) (*review.Review, error) {
	var rv review.Review
	err := row.Scan(&rv.ID, &rv.CustomerName, &rv.Rating, &rv.Comment,
		&rv.Location, &rv.IsApproved, &rv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func collectReviews(rows pgx.Rows) ([]review.Review, error) {
	var reviews []review.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan review")
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate reviews")
	}
	return reviews, nil
}
