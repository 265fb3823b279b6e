// Package notify delivers best-effort order notifications to customers.
//
// Dispatch failures are the caller's signal not to mark the order as
// notified; they must never abort the surrounding business operation.
package notify

import (
	"context"

	"github.com/dulcecodigo/storefront/internal/domain/order"
)

// Dispatcher attempts delivery of a notification for an order event.
type Dispatcher interface {
	// OrderCreated notifies the customer that their order was received.
	OrderCreated(ctx context.Context, o *order.Order) error
	// StatusChanged notifies the customer of a fulfillment status change.
	StatusChanged(ctx context.Context, o *order.Order) error
}
