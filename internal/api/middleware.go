package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-faster/sdk/zctx"

	"github.com/dulcecodigo/storefront/internal/domain/auth"
)

type claimsKey struct{}

// claimsFromContext returns the verified token claims, if any.
func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return h[len(prefix):]
	}
	return ""
}

// optionalUser attaches verified claims to the context when a valid bearer
// token is present. An invalid or expired token degrades to an anonymous
// request rather than rejecting it, so checkout keeps working for guests.
func (h *Handler) optionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			claims, err := h.tokens.Verify(token)
			if err != nil {
				zctx.From(r.Context()).Debug("invalid token, proceeding as guest")
			} else {
				ctx := context.WithValue(r.Context(), claimsKey{}, claims)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireUser rejects requests without a valid customer token.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		claims, err := h.tokens.Verify(token)
		if err != nil {
			respondError(w, r, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects requests without a valid staff token.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		claims, err := h.tokens.Verify(token)
		if err != nil {
			respondError(w, r, http.StatusUnauthorized, "invalid token")
			return
		}
		if !claims.Admin {
			respondError(w, r, http.StatusForbidden, "admin access required")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
