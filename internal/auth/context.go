package auth

import "github.com/gin-gonic/gin"

const CtxClaims = "auth_claims"

// SetClaims stores verified claims on the gin context.
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(CtxClaims, claims)
}

// ClaimsFrom returns the claims stored by the auth middleware, if any.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok && claims != nil
}
