package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanichuri/portfolio/config"
)

func unsignedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-checked"))
	require.NoError(t, err)
	return tok
}

func TestNew_SelectsImplementation(t *testing.T) {
	assert.IsType(t, Disabled{}, New(config.ClientConfig{AuthEnabled: false}))
	assert.IsType(t, &TokenSession{}, New(config.ClientConfig{AuthEnabled: true, IDToken: "x"}))
}

func TestDisabled(t *testing.T) {
	s := Disabled{}
	u, err := s.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "local-admin", u.Label)
	assert.NoError(t, s.SignOut(context.Background()))
	assert.Nil(t, s.TokenSource())
}

func TestTokenSession_UserLabel(t *testing.T) {
	cases := []struct {
		name   string
		claims jwt.MapClaims
		want   string
	}{
		{"email login", jwt.MapClaims{"email": "me@example.com", "cognito:username": "u-1"}, "me@example.com"},
		{"username", jwt.MapClaims{"cognito:username": "u-1"}, "u-1"},
		{"nothing", jwt.MapClaims{"sub": "abc"}, "admin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewTokenSession(unsignedToken(t, tc.claims), "")
			u, err := s.CurrentUser(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, u.Label)
		})
	}
}

func TestTokenSession_TokenSource(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	raw := unsignedToken(t, jwt.MapClaims{"sub": "abc", "exp": exp})
	tok, err := NewTokenSession(raw, "").TokenSource().Token()
	require.NoError(t, err)
	assert.Equal(t, raw, tok.AccessToken)
	assert.Equal(t, exp, tok.Expiry.Unix())
}

func TestTokenSession_Expired(t *testing.T) {
	raw := unsignedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	_, err := NewTokenSession(raw, "").CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenSession_FileAndSignOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(unsignedToken(t, jwt.MapClaims{"username": "ishani"})+"\n"), 0o600))

	s := NewTokenSession("", path)
	u, err := s.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ishani", u.Label)

	require.NoError(t, s.SignOut(context.Background()))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	_, err = s.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrSignedOut)
	_, err = s.Token()
	assert.ErrorIs(t, err, ErrSignedOut)
}

func TestTokenSession_GarbageToken(t *testing.T) {
	_, err := NewTokenSession("not-a-jwt", "").CurrentUser(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSignedOut)
}
