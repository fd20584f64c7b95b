// Package identity resolves the requesting user from trusted proxy headers.
// Authentication itself happens upstream; this layer only reads the result
// and falls back to the shared guest identity when no headers are present.
package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

const (
	HeaderUserID  = "X-Orbit-User-Id"
	HeaderName    = "X-Orbit-User-Name"
	HeaderEmail   = "X-Orbit-User-Email"
	HeaderCountry = "X-Orbit-User-Country"
)

type ctxKey string

const userContextKey ctxKey = "orbitgoals.identity.user"

func withUserContext(ctx context.Context, u model.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext returns the resolved user. Requests that did not pass
// through the middleware resolve to the guest identity.
func UserFromContext(ctx context.Context) model.User {
	if u, ok := ctx.Value(userContextKey).(model.User); ok {
		return u
	}
	return Guest()
}

// UserFromRequest is shorthand for UserFromContext(r.Context()).
func UserFromRequest(r *http.Request) model.User {
	return UserFromContext(r.Context())
}

// Guest is the identity used when no user headers are present.
func Guest() model.User {
	return model.User{ID: model.GuestUserID, Name: "Guest"}
}

// FromHeaders builds a user from the request headers, or the guest identity
// when no user id is set.
func FromHeaders(r *http.Request) model.User {
	id := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if id == "" {
		return Guest()
	}
	u := model.User{
		ID:      id,
		Name:    strings.TrimSpace(r.Header.Get(HeaderName)),
		Email:   strings.TrimSpace(r.Header.Get(HeaderEmail)),
		Country: strings.TrimSpace(r.Header.Get(HeaderCountry)),
	}
	if u.Name == "" {
		u.Name = "Explorer"
	}
	return u
}

// Middleware stores the resolved user on the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := FromHeaders(r)
		next.ServeHTTP(w, r.WithContext(withUserContext(r.Context(), u)))
	})
}
