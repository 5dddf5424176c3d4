package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// idTokenVerifier is the part of *fbauth.Client the verifier needs.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier validates Firebase ID tokens with the Admin SDK.
type FirebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier initializes the Admin SDK from a service account file.
func NewFirebaseVerifier(ctx context.Context, credentialsPath string) (*FirebaseVerifier, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	tok, err := v.client.VerifyIDToken(ctx, raw)
	if err != nil {
		return nil, invalid("invalid token")
	}
	claims := &Claims{Subject: tok.UID, TokenUse: "id", Provider: "firebase"}
	if email, ok := tok.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := tok.Claims["name"].(string); ok {
		claims.Username = name
	}
	return claims, nil
}
