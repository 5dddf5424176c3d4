package auth

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIDTokens struct{}

func (fakeIDTokens) VerifyIDToken(_ context.Context, idToken string) (*fbauth.Token, error) {
	if idToken != "good" {
		return nil, errors.New("token has expired")
	}
	return &fbauth.Token{UID: "uid-1", Claims: map[string]interface{}{"email": "a@b.c", "name": "Ishani"}}, nil
}

func TestFirebaseVerifier(t *testing.T) {
	v := &FirebaseVerifier{client: fakeIDTokens{}}

	claims, err := v.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.Subject)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, "firebase", claims.Provider)

	_, err = v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewFirebaseVerifier(context.Background(), "")
	assert.Error(t, err)
}
