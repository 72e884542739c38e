package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/witthawin/moviebase-api/shared/auth"
)

type contextKey struct{}

var sessionClaimsKey = contextKey{}

// requireAuth validates the bearer token and stores the session claims on
// the request context for the wrapped handler.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.respondError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			h.respondError(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims := &auth.SessionClaims{}
		if _, err := h.jwtAuth.ValidateTokenWithClaims(parts[1], h.cfg.Token.Secret, claims); err != nil {
			h.respondError(w, http.StatusUnauthorized, "invalid session token")
			return
		}

		ctx := context.WithValue(r.Context(), sessionClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionClaims returns the claims stored by requireAuth, or nil outside an
// authenticated route.
func sessionClaims(ctx context.Context) *auth.SessionClaims {
	claims, _ := ctx.Value(sessionClaimsKey).(*auth.SessionClaims)
	return claims
}
