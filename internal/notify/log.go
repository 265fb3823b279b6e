package notify

import (
	"context"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/dulcecodigo/storefront/internal/domain/order"
)

// LogDispatcher records notification content in the service log instead of
// delivering it. It serves as the fallback when the email provider is down
// and never fails.
type LogDispatcher struct{}

// OrderCreated logs the confirmation that would have been emailed.
func (LogDispatcher) OrderCreated(ctx context.Context, o *order.Order) error {
	zctx.From(ctx).Info("order confirmation",
		zap.Int64("order_id", o.ID),
		zap.String("to", o.CustomerEmail),
		zap.String("subject", confirmationSubject(o)),
		zap.String("content", confirmationBody(o)),
	)
	return nil
}

// StatusChanged logs the status update that would have been emailed.
func (LogDispatcher) StatusChanged(ctx context.Context, o *order.Order) error {
	zctx.From(ctx).Info("order status update",
		zap.Int64("order_id", o.ID),
		zap.String("to", o.CustomerEmail),
		zap.String("status", string(o.Status)),
		zap.String("subject", statusSubject(o)),
		zap.String("content", statusBody(o)),
	)
	return nil
}
