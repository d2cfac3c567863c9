package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/meditrack-api/internal/apperr"
	"github.com/harentsoaR/meditrack-api/internal/store"
	"github.com/harentsoaR/meditrack-api/internal/utils"
)

const principalKey = "userEmail"

// TokenValidator is satisfied by *utils.TokenManager.
type TokenValidator interface {
	ValidateJWT(token string) (*utils.Claims, error)
}

// AuthMiddleware requires a valid bearer token and stores the caller's email
// on the context.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, apperr.Unauthenticated("Authorization header required"))
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !ok || tokenString == "" {
			abort(c, apperr.Unauthenticated("Bearer token required"))
			return
		}

		claims, err := tokens.ValidateJWT(tokenString)
		if err != nil {
			_ = c.Error(err)
			abort(c, apperr.Unauthenticated("Invalid token"))
			return
		}

		c.Set(principalKey, store.NormalizeEmail(claims.Email))
		c.Next()
	}
}

// Principal returns the authenticated email, or "" outside AuthMiddleware.
func Principal(c *gin.Context) string {
	return c.GetString(principalKey)
}

// IsSelf reports whether email names the authenticated caller.
func IsSelf(c *gin.Context, email string) bool {
	p := Principal(c)
	return p != "" && p == store.NormalizeEmail(email)
}

// RequireSelf rejects requests whose path parameter param is not the
// caller's own email.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsSelf(c, c.Param(param)) {
			abort(c, apperr.Forbidden("forbidden access"))
			return
		}
		c.Next()
	}
}

// abort stops the chain with the status and public message of err.
func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.KindOf(err).Status(), gin.H{"error": apperr.PublicMessage(err)})
}
