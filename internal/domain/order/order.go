package order

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Order represents one purchase transaction moving through the fulfillment
// workflow. UserID is nil for guest checkouts.
type Order struct {
	ID            int64
	UserID        *int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string
	// Items is the serialized cart submitted at checkout. It round-trips
	// exactly as received; only the notification layer peeks inside it.
	Items        json.RawMessage
	Total        decimal.Decimal
	Status       Status
	PointsEarned int64
	PointsUsed   int64
	EmailSent    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository defines persistence operations for orders. Implementations
// assign the ID and both timestamps on Create and refresh UpdatedAt on
// UpdateStatus.
type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ListForUser(ctx context.Context, userID int64) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error)
	MarkNotified(ctx context.Context, id int64) (*Order, error)
}
