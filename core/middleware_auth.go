package core

import (
	"context"
	"net/http"

	"github.com/albashop/alba/db"
)

type contextKey string

const authClaimsKey contextKey = "auth_claims"

// authClaimsFrom returns the claims RequireAuth stored on the request
// context. The second value is false on routes that skipped the middleware.
func authClaimsFrom(r *http.Request) (*AuthClaims, bool) {
	claims, ok := r.Context().Value(authClaimsKey).(*AuthClaims)
	return claims, ok
}

// RequireAuth authenticates the request and stores the resulting claims on
// the request context for downstream handlers.
func (a *App) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err, resp := a.Auth().Authenticate(r)
		if err != nil {
			writeJsonError(w, resp)
			return
		}
		ctx := context.WithValue(r.Context(), authClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireVerified gates routes that demand a verified email. Must run after
// RequireAuth.
func (a *App) RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authClaimsFrom(r)
		if !ok {
			writeJsonError(w, errorNoAuthToken)
			return
		}
		if !claims.Verified {
			writeJsonError(w, errorNotVerified)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates admin-only routes. Fails closed: missing claims or any
// role other than admin is rejected.
func (a *App) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authClaimsFrom(r)
		if !ok {
			writeJsonError(w, errorNoAuthToken)
			return
		}
		if claims.Role != db.RoleAdmin {
			writeJsonError(w, errorAdminsOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireVendorOrAdmin gates catalog management routes. Vendors manage their
// own products, admins manage all of them.
func (a *App) RequireVendorOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authClaimsFrom(r)
		if !ok {
			writeJsonError(w, errorNoAuthToken)
			return
		}
		if claims.Role != db.RoleAdmin && claims.Role != db.RoleVendor {
			writeJsonError(w, errorForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
