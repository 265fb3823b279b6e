package notify

import (
	"context"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/dulcecodigo/storefront/internal/domain/order"
)

// Fallback tries a primary dispatcher and, when it fails, hands the event to
// a secondary one. The primary's error is still returned so the caller knows
// real delivery did not happen; the fallback outcome is only logged.
type Fallback struct {
	Primary   Dispatcher
	Secondary Dispatcher
}

// OrderCreated dispatches the created event with fallback.
func (f Fallback) OrderCreated(ctx context.Context, o *order.Order) error {
	err := f.Primary.OrderCreated(ctx, o)
	if err == nil {
		return nil
	}
	if ferr := f.Secondary.OrderCreated(ctx, o); ferr != nil {
		zctx.From(ctx).Error("fallback notification failed",
			zap.Int64("order_id", o.ID), zap.Error(ferr))
	}
	return err
}

// StatusChanged dispatches the status-changed event with fallback.
func (f Fallback) StatusChanged(ctx context.Context, o *order.Order) error {
	err := f.Primary.StatusChanged(ctx, o)
	if err == nil {
		return nil
	}
	if ferr := f.Secondary.StatusChanged(ctx, o); ferr != nil {
		zctx.From(ctx).Error("fallback notification failed",
			zap.Int64("order_id", o.ID), zap.Error(ferr))
	}
	return err
}
