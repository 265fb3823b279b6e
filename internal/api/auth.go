package api

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/dulcecodigo/storefront/internal/domain/auth"
	"github.com/dulcecodigo/storefront/internal/domain/user"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  userJSON `json:"user"`
	Token string   `json:"token"`
}

// Signup registers a customer account and returns a session token.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if len(req.Name) < 2 {
		respondError(w, r, http.StatusBadRequest, "name must be at least 2 characters")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, r, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	u, err := h.users.Create(r.Context(), req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			respondError(w, r, http.StatusConflict, "email already registered")
			return
		}
		respondStorageError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(u.ID, u.Email, false)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	zctx.From(r.Context()).Info("user registered", zap.Int64("user_id", u.ID))
	respondJSON(w, r, http.StatusOK, sessionResponse{User: toUserJSON(u), Token: token})
}

// Login authenticates a customer and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.users.GetByEmail(r.Context(), strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondError(w, r, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondStorageError(w, r, err)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		respondError(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Issue(u.ID, u.Email, false)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, sessionResponse{User: toUserJSON(u), Token: token})
}

// Profile returns the authenticated customer's account, including the
// current loyalty balance.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	u, err := h.users.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "user not found")
			return
		}
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toUserJSON(u))
}

// ProfileOrders returns the authenticated customer's orders, newest first.
func (h *Handler) ProfileOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	orders, err := h.orderRepo.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toOrderListJSON(orders))
}

// ProfileLoyaltyHistory returns the authenticated customer's ledger entries,
// newest first.
func (h *Handler) ProfileLoyaltyHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	entries, err := h.ledger.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toLoyaltyListJSON(entries))
}

// AdminLogin authenticates a staff account and returns an admin token.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	admin, err := h.admins.GetByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, auth.ErrAdminNotFound) {
			respondError(w, r, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondStorageError(w, r, err)
		return
	}
	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		respondError(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Issue(admin.ID, admin.Username, true)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	zctx.From(r.Context()).Info("admin login", zap.String("username", admin.Username))
	respondJSON(w, r, http.StatusOK, map[string]string{"token": token})
}
