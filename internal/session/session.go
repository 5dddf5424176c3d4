// Package session decides who is operating the CMS and which bearer token, if
// any, accompanies admin API calls.
package session

import (
	"context"
	"errors"

	"golang.org/x/oauth2"

	"github.com/ishanichuri/portfolio/config"
)

// LocalAdminLabel is shown when authentication is switched off.
const LocalAdminLabel = "local-admin"

var (
	ErrSignedOut    = errors.New("not signed in")
	ErrTokenExpired = errors.New("id token expired")
)

type User struct {
	Label   string
	Subject string
	Email   string
}

// Session gates the CMS. TokenSource is nil when requests go out unauthenticated.
type Session interface {
	CurrentUser(ctx context.Context) (User, error)
	SignOut(ctx context.Context) error
	TokenSource() oauth2.TokenSource
}

// New picks the implementation from the client configuration.
func New(cfg config.ClientConfig) Session {
	if !cfg.AuthEnabled {
		return Disabled{}
	}
	return NewTokenSession(cfg.IDToken, cfg.TokenFile)
}

// Disabled lets every caller through as the local admin.
type Disabled struct{}

func (Disabled) CurrentUser(context.Context) (User, error) {
	return User{Label: LocalAdminLabel, Subject: LocalAdminLabel}, nil
}

func (Disabled) SignOut(context.Context) error { return nil }

func (Disabled) TokenSource() oauth2.TokenSource { return nil }
