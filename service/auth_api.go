package service

import (
	"context"

	"myclient/domain"
	"myclient/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// AuthAPI wraps the /auth endpoints. Login and Register start the session on success.
type AuthAPI struct {
	client  *APIClient
	session *Session
	logger  log.Logger
}

// NewAuthAPI creates an AuthAPI. Panics on nil deps.
func NewAuthAPI(client *APIClient, session *Session, logger log.Logger) *AuthAPI {
	return &AuthAPI{
		client:  helpers.NilPanic(client, "service.auth_api.go: client is required"),
		session: helpers.NilPanic(session, "service.auth_api.go: session is required"),
		logger:  log.WithPrefix(helpers.NilPanic(logger, "service.auth_api.go: logger is required"), "component", "AuthAPI"),
	}
}

// Login posts the credentials and stores the returned token and user.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (domain.TokenResponse, error) {
	resp, err := decodeAs[domain.TokenResponse](a.client.Post(ctx, "/auth/login", domain.LoginRequest{
		Username: username,
		Password: password,
	}))
	if err != nil {
		return resp, err
	}
	return resp, a.session.Start(ctx, resp)
}

// Register creates an account and stores the returned token and user.
func (a *AuthAPI) Register(ctx context.Context, req domain.RegisterRequest) (domain.TokenResponse, error) {
	resp, err := decodeAs[domain.TokenResponse](a.client.Post(ctx, "/auth/register", req))
	if err != nil {
		return resp, err
	}
	return resp, a.session.Start(ctx, resp)
}

// Me returns the current user as the backend sees it.
func (a *AuthAPI) Me(ctx context.Context) (domain.User, error) {
	return decodeAs[domain.User](a.client.Get(ctx, "/auth/me"))
}

// Verify asks the backend whether the stored token is still valid. An invalid token surfaces as session_expired.
func (a *AuthAPI) Verify(ctx context.Context) (domain.VerifyResponse, error) {
	return decodeAs[domain.VerifyResponse](a.client.Post(ctx, "/auth/verify", nil))
}

// Logout notifies the backend and clears the local session. Backend failures are logged, never returned;
// a 401 has already cleared the session.
func (a *AuthAPI) Logout(ctx context.Context) error {
	if a.session.IsLoggedIn(ctx) {
		_, err := a.client.Post(ctx, "/auth/logout", nil)
		if IsSessionExpired(err) {
			return nil
		}
		if err != nil {
			level.Warn(a.logger).Log("msg", "backend logout failed", "err", err)
		}
	}
	return a.session.Logout(ctx)
}
