package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// Backend is a scriptable stand-in for the cuenta services. Register
// handlers per "METHOD /path" route; anything unhandled answers 404.
// Call counts let tests assert how many requests actually went out.
type Backend struct {
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
}

// StartBackend runs a fake backend for the duration of the test
func StartBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		handlers: map[string]http.HandlerFunc{},
		calls:    map[string]int{},
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.dispatch))
	t.Cleanup(b.server.Close)

	return b
}

func (b *Backend) URL() string {
	return b.server.URL
}

// Handle scripts a route, e.g. b.Handle("POST /api/auth/login", fn)
func (b *Backend) Handle(route string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[route] = h
}

// Calls returns how many requests hit the given route
func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// TotalCalls returns how many requests the backend received in total
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0
	for _, n := range b.calls {
		total += n
	}
	return total
}

func (b *Backend) dispatch(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path

	b.mu.Lock()
	b.calls[route]++
	h := b.handlers[route]
	b.mu.Unlock()

	if h == nil {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

// JSON writes v with the given status code
func JSON(t *testing.T, w http.ResponseWriter, code int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// MakeAccessToken issues an HS256 token with the given expiry, signed with
// a throwaway key. The client never verifies signatures so any key works.
func MakeAccessToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		Subject:   "1",
	})

	signed, err := token.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)
	return signed
}

// MakeTokenWithoutExpiry issues a token that decodes fine but has no exp claim
func MakeTokenWithoutExpiry(t *testing.T) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "1",
	})

	signed, err := token.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)
	return signed
}
