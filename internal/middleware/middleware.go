package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/auth"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
)

const principalKey = "principal"

// AuthMiddleware resolves the bearer token into a Principal and stores it
// on the request context. Requests without a valid token are rejected.
func AuthMiddleware() gin.HandlerFunc {
	secret := []byte(os.Getenv("JWT_SECRET"))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header missing or malformed",
			})
			return
		}

		principal, err := auth.ParseToken(strings.TrimPrefix(header, prefix), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRoles gates a route on the caller's role. It must run after
// AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "User not authenticated",
			})
			return
		}
		if !auth.Authorize(principal, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You do not have permission to perform this action",
			})
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal set by AuthMiddleware, if any.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	raw, exists := c.Get(principalKey)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := raw.(auth.Principal)
	return principal, ok
}
