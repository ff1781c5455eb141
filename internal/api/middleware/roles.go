package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerbridge/internal/models"
)

// RequireRoles creates a Gin middleware that rejects requests whose
// authenticated role is not in the allowed set. It must run after
// JWTAuthMiddleware: a missing role means the route was misconfigured and
// the request is rejected as unauthenticated.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	allowedSet := make(map[models.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, err := GetRoleFromContext(c)
		if err != nil {
			log.Printf("Role middleware: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}
