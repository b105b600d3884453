package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"myclient/domain"
	"myclient/helpers"
	"myclient/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() (*Session, map[string]string, *mock.NavigatorMock) {
	kv, data := newKVMock()
	nav := &mock.NavigatorMock{}
	return NewSession(NewStorage(kv, log.NewNopLogger()), nav, log.NewNopLogger()), data, nav
}

func TestNewSession_Panics(t *testing.T) {
	kv, _ := newKVMock()
	storage := NewStorage(kv, log.NewNopLogger())
	assert.PanicsWithValue(t, "service.session.go: storage is required", func() {
		NewSession(nil, &mock.NavigatorMock{}, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.session.go: navigator is required", func() {
		NewSession(storage, nil, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.session.go: logger is required", func() {
		NewSession(storage, &mock.NavigatorMock{}, nil)
	})
}

func TestSession_IsLoggedIn(t *testing.T) {
	tests := []struct {
		name  string
		token *string
		want  bool
	}{
		{name: "absent", token: nil, want: false},
		{name: "empty", token: ptr(""), want: false},
		{name: "present", token: ptr("abc"), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, data, _ := newTestSession()
			if tt.token != nil {
				data[KeyToken] = *tt.token
			}
			assert.Equal(t, tt.want, s.IsLoggedIn(context.Background()))
		})
	}
}

func TestSession_StartStoresTokenRawAndUserAsJSON(t *testing.T) {
	s, data, _ := newTestSession()
	ctx := context.Background()
	full := "Alice Doe"
	resp := domain.TokenResponse{
		AccessToken: "tok-123",
		TokenType:   "bearer",
		User:        domain.User{ID: 7, Username: "alice", FullName: &full, Role: domain.RoleAdmin},
	}

	require.NoError(t, s.Start(ctx, resp))
	assert.Equal(t, "tok-123", data[KeyToken])
	assert.JSONEq(t, `{"id":7,"username":"alice","full_name":"Alice Doe","role":"admin","created_at":null}`, data[KeyUser])

	assert.True(t, s.IsLoggedIn(ctx))
	assert.Equal(t, "tok-123", s.Token(ctx))
	user, ok := s.User(ctx)
	require.True(t, ok)
	assert.Equal(t, "Alice Doe", user.DisplayName())
}

func TestSession_TokenThatLooksLikeJSONIsKeptAsText(t *testing.T) {
	s, _, _ := newTestSession()
	ctx := context.Background()
	require.NoError(t, s.SetToken(ctx, "12345"))
	assert.Equal(t, "12345", s.Token(ctx))
}

func TestSession_Logout(t *testing.T) {
	s, data, nav := newTestSession()
	ctx := context.Background()
	data[KeyToken] = "tok"
	data[KeyUser] = `{"username":"alice"}`
	data["theme"] = "dark"

	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsLoggedIn(ctx))
	_, ok := s.User(ctx)
	assert.False(t, ok)
	assert.Equal(t, map[string]string{"theme": "dark"}, data)
	require.Len(t, nav.NavigateCalls(), 1)
	assert.Equal(t, LoginPage, nav.NavigateCalls()[0].Location)
}

func TestSession_Logout_NavigatesEvenWhenStoreFails(t *testing.T) {
	kv := &mock.KVStoreMock{
		DeleteFunc: func(ctx context.Context, key string) error {
			return errors.New("read-only file system")
		},
	}
	nav := &mock.NavigatorMock{}
	s := NewSession(NewStorage(kv, log.NewNopLogger()), nav, log.NewNopLogger())

	err := s.Logout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only file system")
	assert.Len(t, kv.DeleteCalls(), 2)
	assert.Len(t, nav.NavigateCalls(), 1)
}

func TestSession_ReadsTreatStoreErrorsAsAbsent(t *testing.T) {
	kv := &mock.KVStoreMock{
		GetFunc: func(ctx context.Context, key string) (string, bool, error) {
			return "", false, errors.New("redis: connection refused")
		},
	}
	s := NewSession(NewStorage(kv, log.NewNopLogger()), &mock.NavigatorMock{}, log.NewNopLogger())
	ctx := context.Background()
	assert.Equal(t, "", s.Token(ctx))
	assert.False(t, s.IsLoggedIn(ctx))
	_, ok := s.User(ctx)
	assert.False(t, ok)
}

func TestSession_CheckAuth(t *testing.T) {
	s, data, nav := newTestSession()
	ctx := context.Background()

	assert.False(t, s.CheckAuth(ctx))
	require.Len(t, nav.NavigateCalls(), 1)
	assert.Equal(t, LoginPage, nav.NavigateCalls()[0].Location)

	data[KeyToken] = "tok"
	assert.True(t, s.CheckAuth(ctx))
	assert.Len(t, nav.NavigateCalls(), 1)
}

func TestSession_Claims(t *testing.T) {
	s, data, _ := newTestSession()
	ctx := context.Background()

	_, err := s.Claims(ctx)
	assert.True(t, IsNotLoggedIn(err))

	data[KeyToken] = "opaque"
	_, err = s.Claims(ctx)
	assert.True(t, IsBadParameterError(err))

	exp := helpers.TestNow().Add(time.Hour)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(helpers.TestNow()),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	data[KeyToken] = signed

	claims, err := s.Claims(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.True(t, exp.Equal(*claims.ExpiresAt))
	assert.True(t, helpers.TestNow().Equal(*claims.IssuedAt))
	assert.False(t, claims.Expired(helpers.TestNow()))
	assert.True(t, claims.Expired(exp))
}

func TestTokenClaims_WithoutTimes(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	claims, err := ParseTokenClaims(signed)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
	assert.Nil(t, claims.IssuedAt)
	assert.False(t, claims.Expired(helpers.TestNow()))

	out, err := json.Marshal(claims)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sub":"x"}`, string(out))
}
