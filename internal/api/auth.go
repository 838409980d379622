package api

import (
	"context"
	"net/http"

	"github.com/dquisbert/cartera/internal/models"
)

// Identity service paths. Must match the backend contract exactly.
const (
	pathRegister  = "/api/auth/register"
	pathLogin     = "/api/auth/login"
	pathMe        = "/api/auth/me"
	pathRefresh   = "/api/auth/refresh"
	pathLogout    = "/api/auth/logout"
	pathLogoutAll = "/api/auth/logout-all"
	pathVerify    = "/api/auth/verify"
)

// RegisterRequest is the register payload. FullName is never empty here,
// the session layer defaults it to the username before calling.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (models.RegisterResult, error) {
	var result models.RegisterResult
	err := c.do(ctx, http.MethodPost, pathRegister, req, &result)
	return result, err
}

func (c *Client) Login(ctx context.Context, email string, password string) (models.TokenPair, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var pair models.TokenPair
	err := c.do(ctx, http.MethodPost, pathLogin, body, &pair)
	return pair, err
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, pathMe, nil, &user)
	return user, err
}

func (c *Client) UpdateMe(ctx context.Context, update models.UserUpdate) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPut, pathMe, update, &user)
	return user, err
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	body := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}

	var pair models.TokenPair
	err := c.do(ctx, http.MethodPost, pathRefresh, body, &pair)
	return pair, err
}

// Logout revokes one refresh token server-side
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}

	return c.do(ctx, http.MethodPost, pathLogout, body, nil)
}

// LogoutAll invalidates every session of the account
func (c *Client) LogoutAll(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, pathLogoutAll, nil, nil)
}

// Verify asks the server whether the current access token is still good
func (c *Client) Verify(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, pathVerify, nil, nil)
}
