package session

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsession "github.com/dquisbert/cartera/internal/session"
	"github.com/dquisbert/cartera/internal/testutil"
	"github.com/dquisbert/cartera/tests/e2e"
)

const (
	registerURL = "POST /api/auth/register"
	loginURL    = "POST /api/auth/login"
	meURL       = "GET /api/auth/me"
	refreshURL  = "POST /api/auth/refresh"
	logoutURL   = "POST /api/auth/logout"
)

func Test_SessionFlow(t *testing.T) {
	t.Parallel()

	t.Run("register login refresh logout", func(t *testing.T) {
		env := e2e.Serve(t)

		env.Backend.Handle(registerURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusCreated, map[string]any{
				"user": map[string]any{"id": 7, "username": "ana", "email": "ana@example.com"},
			})
		})
		env.Backend.Handle(loginURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusOK, map[string]any{
				"access_token":  testutil.MakeAccessToken(t, time.Now().Add(30*time.Minute)),
				"refresh_token": "refresh-1",
				"token_type":    "bearer",
			})
		})
		env.Backend.Handle(meURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusOK, map[string]any{
				"id": 7, "username": "ana", "email": "ana@example.com",
			})
		})
		env.Backend.Handle(refreshURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusOK, map[string]any{
				"access_token":  testutil.MakeAccessToken(t, time.Now().Add(time.Hour)),
				"refresh_token": "refresh-2",
				"token_type":    "bearer",
			})
		})
		env.Backend.Handle(logoutURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusOK, map[string]any{"message": "Sesión cerrada"})
		})

		// Register, then log in as the new user
		_, err := env.Sessions.Register(t.Context(), appsession.RegisterInput{
			Username: "ana",
			Email:    "ana@example.com",
			Password: "secret-password",
		})
		require.NoError(t, err)

		_, err = env.Sessions.Login(t.Context(), "ana@example.com", "secret-password")
		require.NoError(t, err)

		require.True(t, env.Sessions.IsAuthenticated(t.Context()))
		user, ok := env.Sessions.User()
		require.True(t, ok)
		assert.Equal(t, "ana", user.Username)

		// The session survives a process restart
		restarted := env.Reopen(t)
		require.True(t, restarted.Sessions.IsAuthenticated(t.Context()))

		// Refresh rotates the pair in place
		before, _ := restarted.Sessions.Token()
		pair, err := restarted.Sessions.Refresh(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "refresh-2", pair.RefreshToken)
		after, _ := restarted.Sessions.Token()
		assert.NotEqual(t, before, after)

		// Logout revokes once and wipes the file
		restarted.Sessions.Logout(t.Context())
		assert.Equal(t, 1, env.Backend.Calls(logoutURL))
		assert.False(t, restarted.Sessions.IsAuthenticated(t.Context()))
		assert.Equal(t, []string{appsession.EndLogout}, *restarted.EndReasons)

		_, err = os.Stat(env.StorePath)
		assert.True(t, os.IsNotExist(err), "session file should be removed")
	})

	t.Run("expired session tears down on restart", func(t *testing.T) {
		env := e2e.Serve(t)

		env.Backend.Handle(loginURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusOK, map[string]any{
				"access_token":  testutil.MakeAccessToken(t, time.Now().Add(-time.Minute)),
				"refresh_token": "refresh-1",
				"token_type":    "bearer",
			})
		})
		env.Backend.Handle(meURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusOK, map[string]any{
				"id": 7, "username": "ana", "email": "ana@example.com",
			})
		})
		env.Backend.Handle(logoutURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusOK, map[string]any{"message": "Sesión cerrada"})
		})

		_, err := env.Sessions.Login(t.Context(), "ana@example.com", "secret-password")
		require.NoError(t, err)

		restarted := env.Reopen(t)
		assert.False(t, restarted.Sessions.IsAuthenticated(t.Context()))
		assert.Equal(t, 1, env.Backend.Calls(logoutURL), "expired token revokes the refresh token")
		assert.Equal(t, []string{appsession.EndExpired}, *restarted.EndReasons)

		_, ok := restarted.Sessions.Token()
		assert.False(t, ok, "nothing left in the store")
	})

	t.Run("rejected refresh ends the session", func(t *testing.T) {
		env := e2e.Serve(t)

		env.Backend.Handle(loginURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusOK, map[string]any{
				"access_token":  testutil.MakeAccessToken(t, time.Now().Add(30*time.Minute)),
				"refresh_token": "refresh-1",
				"token_type":    "bearer",
			})
		})
		env.Backend.Handle(meURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusOK, map[string]any{
				"id": 7, "username": "ana", "email": "ana@example.com",
			})
		})
		env.Backend.Handle(refreshURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusUnauthorized, map[string]any{"detail": "Invalid refresh token"})
		})
		env.Backend.Handle(logoutURL, func(w http.ResponseWriter, r *http.Request) {
			testutil.JSON(t, w, http.StatusOK, map[string]any{"message": "Sesión cerrada"})
		})

		_, err := env.Sessions.Login(t.Context(), "ana@example.com", "secret-password")
		require.NoError(t, err)

		_, err = env.Sessions.Refresh(t.Context())
		require.Error(t, err)

		assert.False(t, env.Sessions.IsAuthenticated(t.Context()))
		assert.Equal(t, []string{appsession.EndRefreshFailed}, *env.EndReasons)
	})
}
