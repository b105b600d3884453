package service

import (
	"context"
	"errors"

	"myclient/domain"
	"myclient/helpers"
	"myclient/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Store keys of the session.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// LoginPage is the location the session navigates to on logout.
const LoginPage = "login.html"

// Session manages the persisted bearer token and user record. Token and user live under two independent keys;
// the session counts as logged in when the token is present and non-empty.
//
// Reads never fail: a store error is logged and treated as an absent value.
type Session struct {
	storage   *Storage
	navigator interfaces.Navigator
	logger    log.Logger
}

// NewSession creates a Session. Panics on nil storage, navigator or logger.
func NewSession(storage *Storage, navigator interfaces.Navigator, logger log.Logger) *Session {
	return &Session{
		storage:   helpers.NilPanic(storage, "service.session.go: storage is required"),
		navigator: helpers.NilPanic(navigator, "service.session.go: navigator is required"),
		logger:    log.WithPrefix(helpers.NilPanic(logger, "service.session.go: logger is required"), "component", "Session"),
	}
}

// Token returns the stored bearer token, "" when there is none.
func (s *Session) Token(ctx context.Context) string {
	token, ok, err := s.storage.GetText(ctx, KeyToken)
	if err != nil {
		level.Error(s.logger).Log("msg", "read token", "err", err)
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

// User returns the stored user record; false when absent or unreadable.
func (s *Session) User(ctx context.Context) (domain.User, bool) {
	var user domain.User
	ok, err := s.storage.Decode(ctx, KeyUser, &user)
	if err != nil {
		level.Error(s.logger).Log("msg", "read user", "err", err)
		return domain.User{}, false
	}
	return user, ok
}

// SetToken stores the bearer token.
func (s *Session) SetToken(ctx context.Context, token string) error {
	return s.storage.Set(ctx, KeyToken, token)
}

// SetUser stores the user record.
func (s *Session) SetUser(ctx context.Context, user domain.User) error {
	return s.storage.Set(ctx, KeyUser, user)
}

// Start persists both halves of a login or register response.
func (s *Session) Start(ctx context.Context, resp domain.TokenResponse) error {
	if err := s.SetToken(ctx, resp.AccessToken); err != nil {
		return err
	}
	if err := s.SetUser(ctx, resp.User); err != nil {
		return err
	}
	level.Info(s.logger).Log("msg", "session started", "username", resp.User.Username)
	return nil
}

// IsLoggedIn reports whether a non-empty token is stored.
func (s *Session) IsLoggedIn(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// Logout removes token and user and navigates to the login page. Navigation happens even when removal fails;
// the removal error is returned.
func (s *Session) Logout(ctx context.Context) error {
	err := errors.Join(
		s.storage.Remove(ctx, KeyToken),
		s.storage.Remove(ctx, KeyUser),
	)
	if err != nil {
		level.Error(s.logger).Log("msg", "clear session", "err", err)
	} else {
		level.Info(s.logger).Log("msg", "session cleared")
	}

	s.navigator.Navigate(LoginPage)
	return err
}

// CheckAuth returns true when logged in; otherwise navigates to the login page and returns false.
func (s *Session) CheckAuth(ctx context.Context) bool {
	if s.IsLoggedIn(ctx) {
		return true
	}
	s.navigator.Navigate(LoginPage)
	return false
}

// Claims decodes the stored token without verification.
//
// Returns: (claims, nil); (zero, *APIError not_logged_in) when there is no token; (zero, *APIError bad_parameter)
// when the token is not a JWT.
func (s *Session) Claims(ctx context.Context) (TokenClaims, error) {
	token := s.Token(ctx)
	if token == "" {
		return TokenClaims{}, NewNotLoggedInError()
	}
	return ParseTokenClaims(token)
}
