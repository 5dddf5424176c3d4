package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

type CognitoOptions struct {
	Region     string
	UserPoolID string
	ClientID   string
	// JWKSURL overrides the pool's well-known key set location.
	JWKSURL string
}

// Issuer is the iss claim Cognito writes for the pool.
func (o CognitoOptions) Issuer() string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", o.Region, o.UserPoolID)
}

// CognitoVerifier validates Cognito id and access tokens against the pool's JWKS.
type CognitoVerifier struct {
	issuer   string
	clientID string
	jwks     *keyfunc.JWKS
}

func NewCognitoVerifier(opt CognitoOptions) (*CognitoVerifier, error) {
	if opt.UserPoolID == "" || opt.ClientID == "" {
		return nil, fmt.Errorf("COGNITO_USER_POOL_ID and COGNITO_APP_CLIENT_ID are required")
	}
	url := opt.JWKSURL
	if url == "" {
		url = opt.Issuer() + "/.well-known/jwks.json"
	}

	jwks, err := keyfunc.Get(url, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    5 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("load cognito jwks: %w", err)
	}
	return &CognitoVerifier{issuer: opt.Issuer(), clientID: opt.ClientID, jwks: jwks}, nil
}

func (v *CognitoVerifier) Verify(_ context.Context, raw string) (*Claims, error) {
	mc := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, mc, v.jwks.Keyfunc, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil || !token.Valid {
		return nil, invalid("token signature invalid")
	}

	if iss, _ := mc["iss"].(string); iss != v.issuer {
		return nil, invalid("token issuer invalid")
	}

	use, _ := mc["token_use"].(string)
	switch use {
	case "id":
		if !mc.VerifyAudience(v.clientID, true) {
			return nil, invalid("token audience invalid")
		}
	case "access":
		if cid, _ := mc["client_id"].(string); cid != v.clientID {
			return nil, invalid("token client_id invalid")
		}
	default:
		return nil, invalid("token type invalid")
	}

	claims := &Claims{TokenUse: use, Provider: "cognito"}
	claims.Subject, _ = mc["sub"].(string)
	claims.Email, _ = mc["email"].(string)
	if name, ok := mc["cognito:username"].(string); ok {
		claims.Username = name
	} else {
		claims.Username, _ = mc["username"].(string)
	}
	return claims, nil
}

// Close stops the background key refresh.
func (v *CognitoVerifier) Close() {
	v.jwks.EndBackground()
}
