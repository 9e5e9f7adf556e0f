// Package requestid assigns a unique ID to every request for log
// correlation. IDs are UUID v7 (time-ordered, RFC 9562) unless the client
// already supplied one.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the request and response header carrying the request ID.
const Header = "X-Request-ID"

// idKey is the context key for the request ID.
type idKey struct{}

// Middleware creates a middleware that ensures each request has an ID.
// A client-supplied X-Request-ID is reused; otherwise a new UUID v7 is
// generated. The ID is echoed in the response header and stored in the
// request context.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = uuid.Must(uuid.NewV7()).String()
			}

			w.Header().Set(Header, id)

			ctx := context.WithValue(r.Context(), idKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the request ID stored by the middleware, or ""
// when the request did not pass through it.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(idKey{}).(string)
	return id
}
