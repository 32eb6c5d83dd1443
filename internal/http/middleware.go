package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fieldpoint/academy/internal/auth"
	"github.com/fieldpoint/academy/internal/roster"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const claimsKey contextKey = "claims"

// paramsMiddleware logs the request and handles the 'verbose' query parameter
// for request-scoped verbose logging.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware verifies the bearer token and stores the session claims in
// the request context. Requests without a valid token are rejected.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := s.Auth.VerifyToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireEditor rejects roles without the edit capability before the handler
// (and therefore before any store mutation) is reached.
func requireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		if claims == nil || !claims.Role.CanEdit() {
			respondError(w, http.StatusForbidden, "requires admin or coach role")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin restricts a route to administrators.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r)
		if claims == nil || claims.Role != roster.RoleAdmin {
			respondError(w, http.StatusForbidden, "requires admin role")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// claimsFromContext is a helper to safely retrieve the session claims from the
// request context.
func claimsFromContext(r *http.Request) *auth.Claims {
	claims, ok := r.Context().Value(claimsKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
