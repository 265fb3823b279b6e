package user

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

var (
	// ErrNotFound is returned when a requested user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when signing up with an email that is
	// already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// User is a registered customer account. LoyaltyPoints is a cached
// projection of the loyalty ledger; it is mutated only by the ledger
// repository inside the credit/debit transaction.
type User struct {
	ID            int64
	Name          string
	Email         string
	PasswordHash  []byte
	LoyaltyPoints int64
	CreatedAt     time.Time
}

// Repository defines persistence operations for customer accounts.
type Repository interface {
	Create(ctx context.Context, name, email string, passwordHash []byte) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
