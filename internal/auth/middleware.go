package auth

import (
	"context"
	"net/http"

	"github.com/markussiebert/authgate/internal/logger"
)

// userKey is the context key for the authenticated username.
type userKey struct{}

// WithUser returns a copy of ctx carrying the authenticated username.
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey{}, username)
}

// Username returns the authenticated username stored by the middleware,
// or "" when the request did not pass through the gate.
func Username(ctx context.Context) string {
	username, _ := ctx.Value(userKey{}).(string)
	return username
}

// Middleware creates a basic auth middleware around the gate. Denied
// requests are answered with 401 and the gate's challenge; the deny
// reason is logged, never sent to the client. Allowed requests continue
// to the next handler with the username stored in the request context.
func Middleware(gate *Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := gate.Evaluate(r.Header.Get("Authorization"))
			if !decision.Allow {
				logger.Warn("Unauthorized %s %s from %s: %s", r.Method, r.URL.Path, r.RemoteAddr, decision.Reason)
				unauthorized(w, gate.Challenge())
				return
			}

			logger.Debug("Authenticated %q from %s", decision.User, r.RemoteAddr)
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), decision.User)))
		})
	}
}

func unauthorized(w http.ResponseWriter, challenge string) {
	w.Header().Set("WWW-Authenticate", challenge)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte("401 Unauthorized\n"))
}
