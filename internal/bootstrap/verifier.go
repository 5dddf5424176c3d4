package bootstrap

import (
	"context"

	"github.com/ishanichuri/portfolio/config"
	"github.com/ishanichuri/portfolio/internal/auth"
)

// BuildVerifier returns the token verifier for AUTH_PROVIDER, or nil when auth
// is disabled or not configured. A nil verifier makes every caller a local identity.
func BuildVerifier(ctx context.Context, cfg config.AuthConfig) (auth.Verifier, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if cfg.Provider == config.AuthProviderFirebase {
		v, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	v, err := auth.NewCognitoVerifier(auth.CognitoOptions{
		Region:     cfg.CognitoRegion,
		UserPoolID: cfg.CognitoUserPoolID,
		ClientID:   cfg.CognitoAppClientID,
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
