package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestMiddleware_MissingHeader(t *testing.T) {
	gate := newPlainGate(t, "admin", "secret", "")
	nextCalled := false
	handler := Middleware(gate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Basic", rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "401 Unauthorized\n", rec.Body.String())
	assert.False(t, nextCalled)
}

func TestMiddleware_BadCredentials(t *testing.T) {
	gate := newPlainGate(t, "admin", "secret", "")
	handler := Middleware(gate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run for denied requests")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", EncodeAuthorization(Credentials{"admin", "wrong"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Basic", rec.Header().Get("WWW-Authenticate"))
}

func TestMiddleware_UniformDenials(t *testing.T) {
	// Every deny reason must produce an identical client-visible response.
	gate := newPlainGate(t, "admin", "secret", "")
	handler := Middleware(gate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	headers := []string{
		"",
		"Digest YWRtaW46c2VjcmV0",
		"Basic !!!",
		EncodeAuthorization(Credentials{"admin", "wrong"}),
	}

	for _, header := range headers {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Basic", rec.Header().Get("WWW-Authenticate"))
		assert.Equal(t, "401 Unauthorized\n", rec.Body.String())
	}
}

func TestMiddleware_ValidCredentials(t *testing.T) {
	gate := newPlainGate(t, "admin", "secret", "")
	handler := Middleware(gate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "admin", Username(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", EncodeAuthorization(Credentials{"admin", "secret"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The challenge is only advertised on denials.
	assert.Equal(t, "", rec.Header().Get("WWW-Authenticate"))
}

func TestMiddleware_RealmChallenge(t *testing.T) {
	gate := newPlainGate(t, "admin", "secret", "Admin Area")
	handler := Middleware(gate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Basic realm="Admin Area"`, rec.Header().Get("WWW-Authenticate"))
}

func TestUsername_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", Username(req.Context()))
}
