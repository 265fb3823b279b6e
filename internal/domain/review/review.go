package review

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested review does not exist.
var ErrNotFound = errors.New("review not found")

// Review is a customer testimonial. New reviews start unapproved and only
// appear on the storefront after moderation.
type Review struct {
	ID           int64
	CustomerName string
	Rating       int
	Comment      string
	Location     *string
	IsApproved   bool
	CreatedAt    time.Time
}

// Repository defines persistence operations for reviews.
type Repository interface {
	List(ctx context.Context) ([]Review, error)
	ListApproved(ctx context.Context) ([]Review, error)
	Create(ctx context.Context, r *Review) (*Review, error)
	Approve(ctx context.Context, id int64) (*Review, error)
	Delete(ctx context.Context, id int64) error
}
