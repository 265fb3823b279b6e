package auth

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrAdminNotFound is returned when no admin account matches a username.
var ErrAdminNotFound = errors.New("admin not found")

// Admin is a staff account for the management dashboard.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash []byte
}

// AdminRepository defines lookup of staff accounts.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*Admin, error)
}
