package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/meditrack-api/internal/apperr"
	"github.com/harentsoaR/meditrack-api/internal/models"
)

type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireCapability must run after AuthMiddleware. The caller's role is read
// from the user store on every request.
func RequireCapability(users UserLookup, cap models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := Principal(c)
		if email == "" {
			abort(c, apperr.Unauthenticated("Authorization header required"))
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), email)
		if err != nil {
			err = apperr.Internal("resolve caller role", err)
			_ = c.Error(err)
			abort(c, err)
			return
		}
		if user == nil || !user.Role.Can(cap) {
			abort(c, apperr.Forbidden("forbidden access"))
			return
		}
		c.Next()
	}
}
