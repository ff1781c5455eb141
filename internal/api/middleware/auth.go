// internal/api/middleware/auth.go
package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careerbridge/internal/auth"
	"careerbridge/internal/models"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "userID"   // Key to store user ID in context
	roleCtx             = "userRole" // Key to store role in context
)

// JWTAuthMiddleware creates a Gin middleware for JWT authentication.
// On success the user ID and role from the token are stored in the context.
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			log.Println("Auth middleware: Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			log.Println("Auth middleware: Invalid Authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			return
		}

		userID, role, err := auth.ParseAccessToken(jwtSecret, headerParts[1])
		if err != nil {
			log.Printf("Auth middleware: Error parsing token: %v", err)
			if errors.Is(err, auth.ErrExpiredToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		// Store identity in context for downstream handlers
		c.Set(userCtx, userID)
		c.Set(roleCtx, role)
		c.Next() // Proceed to the next handler
	}
}

// GetUserIDFromContext returns the authenticated user ID set by JWTAuthMiddleware.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	userIDAny, exists := c.Get(userCtx)
	if !exists {
		return uuid.Nil, errors.New("user ID not found in context")
	}

	userID, ok := userIDAny.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user ID in context is of invalid type")
	}

	return userID, nil
}

// GetRoleFromContext returns the authenticated role set by JWTAuthMiddleware.
func GetRoleFromContext(c *gin.Context) (models.Role, error) {
	roleAny, exists := c.Get(roleCtx)
	if !exists {
		return "", errors.New("role not found in context")
	}

	role, ok := roleAny.(models.Role)
	if !ok {
		return "", errors.New("role in context is of invalid type")
	}

	return role, nil
}
