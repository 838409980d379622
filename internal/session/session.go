// Package session is the single authority for establishing, validating and
// tearing down the authenticated session against the identity service.
// Presentation layers (CLI, web UI) only call through this manager and react
// to its session-ended signal.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/dquisbert/cartera/internal/api"
	"github.com/dquisbert/cartera/internal/apperrors"
	"github.com/dquisbert/cartera/internal/logger"
	"github.com/dquisbert/cartera/internal/models"
	"github.com/dquisbert/cartera/internal/tokenstore"
)

// Reasons passed to the session-ended callback
const (
	EndLogout        = "logout"
	EndLogoutAll     = "logout_all"
	EndExpired       = "expired"
	EndRefreshFailed = "refresh_failed"
)

// authAPI is the slice of the transport the manager needs
type authAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) (models.RegisterResult, error)
	Login(ctx context.Context, email string, password string) (models.TokenPair, error)
	Me(ctx context.Context) (models.User, error)
	UpdateMe(ctx context.Context, update models.UserUpdate) (models.User, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context) error
	Verify(ctx context.Context) error
}

type Config struct {
	// Transport to the identity service
	// Required to be set
	API authAPI

	// Store for tokens and the cached profile
	// Required to be set
	Store tokenstore.Store

	Logger logger.Logger

	// Clock used for expiry checks. Defaults to time.Now
	Now func() time.Time

	// OnSessionEnd is invoked after every local teardown with the reason.
	// The presentation layer reacts (navigation, messages), the manager
	// never navigates itself.
	OnSessionEnd func(reason string)
}

type Manager struct {
	api    authAPI
	store  tokenstore.Store
	logger logger.Logger
	now    func() time.Time
	onEnd  func(reason string)
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.API == nil || cfg.Store == nil {
		return nil, errors.New("api and store must not be nil")
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoOp()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.OnSessionEnd == nil {
		cfg.OnSessionEnd = func(string) {}
	}

	return &Manager{
		api:    cfg.API,
		store:  cfg.Store,
		logger: cfg.Logger,
		now:    cfg.Now,
		onEnd:  cfg.OnSessionEnd,
	}, nil
}

// Register creates an account. Input is validated locally first, invalid
// data never reaches the server. When the server auto-logs the new account
// in, the returned tokens and profile are persisted as in Login.
func (m *Manager) Register(ctx context.Context, input RegisterInput) (models.RegisterResult, error) {
	input.normalize()
	if err := checkRegisterInput(input); err != nil {
		return models.RegisterResult{}, err
	}

	result, err := m.api.Register(ctx, api.RegisterRequest{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		FullName: input.FullName,
	})
	if err != nil {
		var authErr *apperrors.AuthError
		if errors.As(err, &authErr) {
			authErr.Message = humanize(authErr)
		}
		return models.RegisterResult{}, err
	}

	if result.Tokens != nil && result.Tokens.AccessToken != "" {
		if err := m.storePair(*result.Tokens); err != nil {
			return result, err
		}
		if err := m.store.SetUser(result.User); err != nil {
			return result, err
		}
	}

	return result, nil
}

// Login exchanges credentials for a token pair and persists it. After the
// tokens are stored a follow-up profile fetch caches the user snapshot,
// best effort: login has already succeeded, a failure here is only logged.
func (m *Manager) Login(ctx context.Context, email string, password string) (models.TokenPair, error) {
	if email == "" || password == "" {
		return models.TokenPair{}, &apperrors.ValidationError{Fields: map[string]string{
			"credentials": "El email y la contraseña son requeridos",
		}}
	}

	pair, err := m.api.Login(ctx, email, password)
	if err != nil {
		var authErr *apperrors.AuthError
		if errors.As(err, &authErr) {
			authErr.Message = humanize(authErr)
		}
		return models.TokenPair{}, err
	}

	if err := m.storePair(pair); err != nil {
		return pair, err
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		m.logger.Warn("Could not fetch profile after login", "error", err)
		return pair, nil
	}
	if err := m.store.SetUser(user); err != nil {
		m.logger.Warn("Could not cache profile after login", "error", err)
	}

	return pair, nil
}

// IsAuthenticated decides from local state only whether the session is
// usable. An expired token tears the session down as a side effect. A token
// that cannot be decoded counts as unauthenticated but triggers no teardown,
// there is nothing meaningful to revoke for garbage input.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	token, ok := m.store.AccessToken()
	if !ok {
		return false
	}

	expiry, err := DecodeExpiry(token)
	if err != nil {
		m.logger.Warn("Stored access token is malformed", "error", err)
		return false
	}

	if !expiry.After(m.now()) {
		m.logger.Info("Access token expired, ending session")
		m.teardown(ctx, EndExpired)
		return false
	}

	return true
}

// Refresh exchanges the stored refresh token for a new pair. A server
// rejection tears the local session down before the error is returned:
// a refresh token the server refused will never work again.
func (m *Manager) Refresh(ctx context.Context) (models.TokenPair, error) {
	refresh, ok := m.store.RefreshToken()
	if !ok {
		return models.TokenPair{}, apperrors.ErrNoRefreshToken
	}

	pair, err := m.api.Refresh(ctx, refresh)
	if err != nil {
		m.teardown(ctx, EndRefreshFailed)
		return models.TokenPair{}, err
	}

	if err := m.storePair(pair); err != nil {
		return pair, err
	}
	return pair, nil
}

// Logout ends the session on this device. The server-side revoke is best
// effort, local teardown happens regardless of the server outcome.
func (m *Manager) Logout(ctx context.Context) {
	m.teardown(ctx, EndLogout)
}

// LogoutAll asks the server to invalidate every session of the account,
// then tears down locally with the same swallow-and-continue contract.
func (m *Manager) LogoutAll(ctx context.Context) {
	if err := m.api.LogoutAll(ctx); err != nil {
		m.logger.Warn("Could not close all sessions server-side", "error", err)
	}
	m.clearAndSignal(EndLogoutAll)
}

// CurrentUser fetches the profile from the server. It does not touch the
// cached snapshot, callers persist explicitly if they want to.
func (m *Manager) CurrentUser(ctx context.Context) (models.User, error) {
	return m.api.Me(ctx)
}

// UpdateUser updates the profile server-side and replaces the cached snapshot
func (m *Manager) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	user, err := m.api.UpdateMe(ctx, update)
	if err != nil {
		return models.User{}, err
	}

	if err := m.store.SetUser(user); err != nil {
		m.logger.Warn("Could not cache updated profile", "error", err)
	}
	return user, nil
}

// Verify confirms token validity with the server
func (m *Manager) Verify(ctx context.Context) error {
	return m.api.Verify(ctx)
}

// User returns the cached profile snapshot, which may be stale or absent
func (m *Manager) User() (models.User, bool) {
	return m.store.User()
}

// Token returns the stored access token without checking its expiry
func (m *Manager) Token() (string, bool) {
	return m.store.AccessToken()
}

// storePair persists a fresh pair: the access token always, the refresh
// token only when the server issued one (the old one stays otherwise)
func (m *Manager) storePair(pair models.TokenPair) error {
	if err := m.store.SetAccessToken(pair.AccessToken); err != nil {
		return err
	}
	if pair.RefreshToken != "" {
		if err := m.store.SetRefreshToken(pair.RefreshToken); err != nil {
			return err
		}
	}
	return nil
}

// teardown is the full logout sequence: one best-effort revoke call when a
// refresh token exists, then an unconditional local clear and the
// session-ended signal
func (m *Manager) teardown(ctx context.Context, reason string) {
	if refresh, ok := m.store.RefreshToken(); ok {
		if err := m.api.Logout(ctx, refresh); err != nil {
			m.logger.Warn("Could not revoke session server-side", "reason", reason, "error", err)
		}
	}
	m.clearAndSignal(reason)
}

func (m *Manager) clearAndSignal(reason string) {
	if err := m.store.ClearAll(); err != nil {
		m.logger.Error("Could not clear session store", "error", err)
	}
	m.onEnd(reason)
}
