package auth

import (
	"context"
	"errors"
)

// Claims is the verified identity attached to a request.
type Claims struct {
	Subject  string `json:"sub"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	TokenUse string `json:"token_use,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// Verifier checks a bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

var ErrInvalidToken = errors.New("invalid token")

// tokenError keeps the reason a token was refused while matching ErrInvalidToken.
type tokenError struct {
	reason string
}

func (e *tokenError) Error() string        { return e.reason }
func (e *tokenError) Is(target error) bool { return target == ErrInvalidToken }

func invalid(reason string) error {
	return &tokenError{reason: reason}
}

// Identities used when verification is switched off.
var (
	LocalUser  = Claims{Subject: "local-user", Email: "local@example.com", Provider: "disabled"}
	LocalAdmin = Claims{Subject: "local-admin", Email: "local@example.com", Provider: "disabled"}
)
