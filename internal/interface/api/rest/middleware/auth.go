package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storage-api/internal/domain/user"
	"storage-api/internal/infrastructure/jwt"
)

const (
	CtxUserRole = "userRole"
	CtxUserID   = "userID"
)

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		identity, err := jwtService.Identify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxUserRole, identity.Role)
		c.Set(CtxUserID, identity.ID)

		c.Next()
	}
}

// CurrentUser returns the caller resolved by AuthMiddleware. When it is
// missing the request is aborted with 401 and ok is false.
func CurrentUser(c *gin.Context) (user.ID, bool) {
	v, exists := c.Get(CtxUserID)
	id, ok := v.(user.ID)
	if !exists || !ok || id <= 0 {
		c.AbortWithStatusJSON(
			http.StatusUnauthorized,
			gin.H{"error": "unauthenticated"},
		)
		return 0, false
	}

	return id, true
}
