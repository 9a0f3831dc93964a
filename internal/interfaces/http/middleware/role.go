package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pollwise/backend/internal/domain/identity"
	"github.com/pollwise/backend/internal/interfaces/http/dto"
)

// RequireAdmin gates a route on the admin role from the JWT claims. The
// role claim is advisory for view selection; a missing or garbled claim
// degrades to the regular user role and is rejected here. Row-level
// rules at the database remain the real authorization boundary.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		if identity.EffectiveRole(claims.Role) != identity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin role required"))
			return
		}

		c.Next()
	}
}
