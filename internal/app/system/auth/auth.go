// Package auth carries the caller's identity through the request
// context. The identity is produced by a pluggable Resolver so the
// transport can change (session cookie today, JWT later) without
// touching handlers. There is deliberately no mutable package-level
// current-user: everything flows through the request context.
package auth

import (
	"context"
	"net/http"
)

// Identity is the resolved caller injected into r.Context().
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Resolver turns an incoming request into an Identity, if any.
// Implementations must be safe for concurrent use.
type Resolver interface {
	Resolve(r *http.Request) (*Identity, bool)
}

type ctxKey string

const identityKey ctxKey = "authIdentity"

// CurrentIdentity returns the identity for the request and a found flag.
func CurrentIdentity(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok
}

// WithIdentity returns a copy of r carrying the given identity.
// Exposed for tests and for resolvers layered outside this package.
func WithIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// LoadIdentity is middleware that resolves the caller and, when found,
// stores the identity in the request context. Absence of an identity is
// not an error: the request continues anonymously.
func LoadIdentity(res Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if res != nil {
				if id, ok := res.Resolve(r); ok {
					r = WithIdentity(r, id)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole gates a subtree to callers holding one of the allowed
// roles. Unresolved callers get 401, wrong-role callers get 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := CurrentIdentity(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if _, ok := set[id.Role]; !ok {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
