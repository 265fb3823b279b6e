// Package api exposes the storefront over HTTP.
package api

import (
	"github.com/dulcecodigo/storefront/internal/domain/analytics"
	"github.com/dulcecodigo/storefront/internal/domain/auth"
	"github.com/dulcecodigo/storefront/internal/domain/loyalty"
	"github.com/dulcecodigo/storefront/internal/domain/order"
	"github.com/dulcecodigo/storefront/internal/domain/product"
	"github.com/dulcecodigo/storefront/internal/domain/review"
	"github.com/dulcecodigo/storefront/internal/domain/user"
)

// Handler holds the HTTP handlers and their collaborators. Reads go straight
// to the repositories; order creation and status changes go through the
// lifecycle service.
type Handler struct {
	orders    *order.Service
	orderRepo order.Repository
	products  product.Repository
	reviews   review.Repository
	users     user.Repository
	ledger    loyalty.Repository
	admins    auth.AdminRepository
	events    analytics.Repository
	tokens    *auth.Manager
}

// NewHandler constructs the API handler with its dependencies.
func NewHandler(
	orders *order.Service,
	orderRepo order.Repository,
	products product.Repository,
	reviews review.Repository,
	users user.Repository,
	ledger loyalty.Repository,
	admins auth.AdminRepository,
	events analytics.Repository,
	tokens *auth.Manager,
) *Handler {
	return &Handler{
		orders:    orders,
		orderRepo: orderRepo,
		products:  products,
		reviews:   reviews,
		users:     users,
		ledger:    ledger,
		admins:    admins,
		events:    events,
		tokens:    tokens,
	}
}
