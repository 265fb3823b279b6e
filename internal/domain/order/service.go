package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dulcecodigo/storefront/internal/domain/loyalty"
	"github.com/dulcecodigo/storefront/internal/domain/user"
)

// Dispatcher attempts delivery of a notification for an order event.
// Dispatch failures must never abort the surrounding business operation.
type Dispatcher interface {
	// OrderCreated notifies the customer that their order was received.
	OrderCreated(ctx context.Context, o *Order) error
	// StatusChanged notifies the customer of a fulfillment status change.
	StatusChanged(ctx context.Context, o *Order) error
}

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// ValidationError indicates malformed or missing checkout input. Nothing is
// persisted when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CreateRequest holds the input for placing an order. Total arrives as the
// decimal string submitted by the client, already net of any point-redemption
// discount applied at quote time. UserID is set from a verified bearer token,
// never from the request body.
type CreateRequest struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string
	Items         json.RawMessage
	Total         string
	PointsUsed    int64
	UserID        *int64
}

// Service is the single authority for creating orders and transitioning
// their status. It keeps the loyalty ledger and the cached balance consistent
// and notifies the customer on a best-effort basis.
type Service struct {
	orders        Repository
	ledger        loyalty.Repository
	users         user.Repository
	dispatcher    Dispatcher
	notifyTimeout time.Duration
}

// NewService creates the order lifecycle service with its collaborators.
func NewService(
	orders Repository,
	ledger loyalty.Repository,
	users user.Repository,
	dispatcher Dispatcher,
	notifyTimeout time.Duration,
) *Service {
	if notifyTimeout <= 0 {
		notifyTimeout = 5 * time.Second
	}
	return &Service{
		orders:        orders,
		ledger:        ledger,
		users:         users,
		dispatcher:    dispatcher,
		notifyTimeout: notifyTimeout,
	}
}

// Create validates checkout input, computes the points accrual, persists the
// order, credits the loyalty ledger for registered users, and attempts a
// confirmation notification.
//
// A ledger failure after the order insert does not undo the order: the order
// is returned as created and the inconsistency is logged for reconciliation.
// Notification failures never surface to the caller.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	total, err := s.validate(ctx, &req)
	if err != nil {
		return nil, err
	}

	pointsEarned := loyalty.PointsEarned(total)

	created, err := s.orders.Create(ctx, &Order{
		UserID:        req.UserID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Address:       req.Address,
		Items:         req.Items,
		Total:         total,
		Status:        StatusPending,
		PointsEarned:  pointsEarned,
		PointsUsed:    req.PointsUsed,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	if req.UserID != nil && created.Status != StatusCancelled && pointsEarned > 0 {
		desc := fmt.Sprintf("%d puntos ganados por $%s gastados - Pedido #%d",
			pointsEarned, total.StringFixed(2), created.ID)
		if err := s.ledger.CreditEarned(ctx, *req.UserID, created.ID, pointsEarned, desc); err != nil {
			// The order exists; only the credit failed. Surfacing this as an
			// error would double-charge on retry, so log it for reconciliation.
			zctx.From(ctx).Error("loyalty credit failed",
				zap.Int64("order_id", created.ID),
				zap.Int64("user_id", *req.UserID),
				zap.Int64("points", pointsEarned),
				zap.Error(err),
			)
		}
	}

	s.notifyCreated(ctx, created)
	return created, nil
}

// notifyCreated attempts the confirmation notification with a bounded
// timeout and marks the order as notified on success.
func (s *Service) notifyCreated(ctx context.Context, o *Order) {
	nctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	if err := s.dispatcher.OrderCreated(nctx, o); err != nil {
		zctx.From(ctx).Warn("order confirmation not delivered",
			zap.Int64("order_id", o.ID),
			zap.Error(err),
		)
		return
	}

	marked, err := s.orders.MarkNotified(ctx, o.ID)
	if err != nil {
		zctx.From(ctx).Warn("marking order as notified failed",
			zap.Int64("order_id", o.ID),
			zap.Error(err),
		)
		return
	}
	o.EmailSent = marked.EmailSent
}

// UpdateStatus validates the transition from the order's current status,
// persists the new status, and notifies the customer. Updating to the
// current status is a no-op that still refreshes the updated timestamp.
func (s *Service) UpdateStatus(ctx context.Context, id int64, to Status) (*Order, error) {
	current, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(current.Status, to) {
		return nil, &InvalidTransitionError{From: current.Status, To: to}
	}

	updated, err := s.orders.UpdateStatus(ctx, id, to)
	if err != nil {
		return nil, err
	}

	nctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.dispatcher.StatusChanged(nctx, updated); err != nil {
		zctx.From(ctx).Warn("status update not delivered",
			zap.Int64("order_id", updated.ID),
			zap.String("status", string(updated.Status)),
			zap.Error(err),
		)
	}

	return updated, nil
}

// validate checks the checkout input and returns the parsed total.
func (s *Service) validate(ctx context.Context, req *CreateRequest) (decimal.Decimal, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return decimal.Zero, &ValidationError{Field: "customerName", Reason: "required"}
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return decimal.Zero, &ValidationError{Field: "customerEmail", Reason: "not a valid email address"}
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return decimal.Zero, &ValidationError{Field: "customerPhone", Reason: "required"}
	}
	if strings.TrimSpace(req.Address) == "" {
		return decimal.Zero, &ValidationError{Field: "address", Reason: "required"}
	}
	if len(req.Items) == 0 || !json.Valid(req.Items) {
		return decimal.Zero, &ValidationError{Field: "items", Reason: "required"}
	}

	total, err := decimal.NewFromString(req.Total)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "total", Reason: "not a valid decimal"}
	}
	if total.IsNegative() {
		return decimal.Zero, &ValidationError{Field: "total", Reason: "must not be negative"}
	}
	total = total.Round(2)

	if req.PointsUsed < 0 {
		return decimal.Zero, &ValidationError{Field: "pointsUsed", Reason: "must not be negative"}
	}
	if req.PointsUsed > 0 {
		if req.UserID == nil {
			return decimal.Zero, &ValidationError{Field: "pointsUsed", Reason: "guest orders cannot redeem points"}
		}
		u, err := s.users.Get(ctx, *req.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return decimal.Zero, &ValidationError{Field: "pointsUsed", Reason: "unknown user"}
			}
			return decimal.Zero, errors.Wrap(err, "load user for redemption check")
		}
		if req.PointsUsed > u.LoyaltyPoints {
			return decimal.Zero, &ValidationError{Field: "pointsUsed", Reason: "exceeds current balance"}
		}
	}

	return total, nil
}
