// Package loyalty holds the points ledger model and the accrual policy.
//
// The ledger is append-only and is the source of truth for a user's balance;
// the cached loyalty_points column on the user row is a projection kept in
// sync inside the same transaction as every ledger write.
package loyalty

import (
	"context"
	"time"
)

// EntryType discriminates the sign of a ledger entry's points magnitude.
type EntryType string

const (
	// EntryEarned credits points to the user's balance.
	EntryEarned EntryType = "earned"
	// EntryRedeemed debits points from the user's balance.
	EntryRedeemed EntryType = "redeemed"
)

// HistoryEntry is an immutable record of one points change. Points is a
// positive magnitude; Type carries the sign.
type HistoryEntry struct {
	ID          int64
	UserID      int64
	OrderID     *int64
	Points      int64
	Type        EntryType
	Description string
	CreatedAt   time.Time
}

// Signed returns the entry's points delta with its sign applied.
func (e HistoryEntry) Signed() int64 {
	if e.Type == EntryRedeemed {
		return -e.Points
	}
	return e.Points
}

// Repository defines persistence for the ledger. CreditEarned must perform
// the balance update and the ledger append as one transaction, and must be
// idempotent per order: a second credit for the same order id is a no-op.
type Repository interface {
	CreditEarned(ctx context.Context, userID, orderID, points int64, description string) error
	ListForUser(ctx context.Context, userID int64) ([]HistoryEntry, error)
}
