package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes builds the /api route tree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Public storefront.
	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)
	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProduct)
	r.Get("/reviews", h.ListReviews)
	r.Post("/reviews", h.CreateReview)
	r.With(h.optionalUser).Post("/orders", h.CreateOrder)
	r.Put("/orders/{id}/status", h.UpdateOrderStatus)

	// Customer account.
	r.Group(func(r chi.Router) {
		r.Use(h.requireUser)
		r.Get("/profile", h.Profile)
		r.Get("/profile/orders", h.ProfileOrders)
		r.Get("/profile/loyalty-history", h.ProfileLoyaltyHistory)
	})

	// Management dashboard.
	r.Post("/admin/login", h.AdminLogin)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/orders", h.ListOrders)
		r.Post("/products", h.CreateProduct)
		r.Put("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)
		r.Put("/reviews/{id}/approve", h.ApproveReview)
		r.Delete("/reviews/{id}", h.DeleteReview)
		r.Get("/admin/analytics", h.AnalyticsSummary)
		r.Get("/admin/orders/export", h.ExportOrders)
	})

	return r
}
