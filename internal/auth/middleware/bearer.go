package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ishanichuri/portfolio/internal/auth"
	"github.com/ishanichuri/portfolio/internal/logging"
)

// OptionalClaims attaches claims when a valid bearer token is sent and lets
// anonymous requests through. A token that fails verification is rejected.
// A nil verifier means auth is disabled and every caller is the local user.
func OptionalClaims(v auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v == nil {
			claims := auth.LocalUser
			auth.SetClaims(c, &claims)
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}
		if !verifyInto(c, v, token) {
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests without a valid bearer token.
func RequireAdmin(v auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v == nil {
			claims := auth.LocalAdmin
			auth.SetClaims(c, &claims)
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing bearer token"})
			return
		}
		if !verifyInto(c, v, token) {
			return
		}
		c.Next()
	}
}

func verifyInto(c *gin.Context, v auth.Verifier, token string) bool {
	claims, err := v.Verify(c.Request.Context(), token)
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, auth.ErrInvalidToken) {
			msg = err.Error()
		}
		logging.Op(c.Request.Context(), "verify_token").WithError(err).Debug("bearer token refused")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
		return false
	}
	auth.SetClaims(c, claims)
	return true
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
