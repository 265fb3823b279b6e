package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dulcecodigo/storefront/internal/domain/auth"
)

var _ auth.AdminRepository = (*AdminRepository)(nil)

// AdminRepository implements auth.AdminRepository backed by PostgreSQL.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns an AdminRepository that uses the given pool.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// GetByUsername returns the staff account matching a username.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*auth.Admin, error) {
	var a auth.Admin
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash FROM admins WHERE username = $1`,
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrAdminNotFound
		}
		return nil, errors.Wrap(err, "select admin")
	}
	return &a, nil
}
