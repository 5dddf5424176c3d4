package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
)

// TokenSession holds a Cognito ID token obtained out of band, either inline or
// from a file written by a sign-in flow. The token is decoded, not verified;
// the API verifies it on every call.
type TokenSession struct {
	mu     sync.Mutex
	inline string
	file   string
	now    func() time.Time
}

func NewTokenSession(token, file string) *TokenSession {
	return &TokenSession{inline: strings.TrimSpace(token), file: file, now: time.Now}
}

func (s *TokenSession) raw() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inline != "" {
		return s.inline, nil
	}
	if s.file == "" {
		return "", ErrSignedOut
	}
	b, err := os.ReadFile(s.file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrSignedOut
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", ErrSignedOut
	}
	return tok, nil
}

func (s *TokenSession) claims() (string, jwt.MapClaims, error) {
	tok, err := s.raw()
	if err != nil {
		return "", nil, err
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return "", nil, fmt.Errorf("decode id token: %w", err)
	}
	if exp, ok := claims["exp"].(float64); ok && s.now().After(time.Unix(int64(exp), 0)) {
		return "", nil, ErrTokenExpired
	}
	return tok, claims, nil
}

func (s *TokenSession) CurrentUser(context.Context) (User, error) {
	_, claims, err := s.claims()
	if err != nil {
		return User{}, err
	}
	email, _ := claims["email"].(string)
	sub, _ := claims["sub"].(string)
	return User{Label: userLabel(claims), Subject: sub, Email: email}, nil
}

// SignOut forgets the inline token and removes the token file.
func (s *TokenSession) SignOut(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inline = ""
	if s.file == "" {
		return nil
	}
	if err := os.Remove(s.file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

func (s *TokenSession) TokenSource() oauth2.TokenSource { return s }

// Token implements oauth2.TokenSource.
func (s *TokenSession) Token() (*oauth2.Token, error) {
	tok, claims, err := s.claims()
	if err != nil {
		return nil, err
	}
	out := &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}
	if exp, ok := claims["exp"].(float64); ok {
		out.Expiry = time.Unix(int64(exp), 0)
	}
	return out, nil
}

// userLabel prefers the sign-in id (email login), then the username.
func userLabel(claims jwt.MapClaims) string {
	for _, key := range []string{"email", "cognito:username", "username"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return "admin"
}
