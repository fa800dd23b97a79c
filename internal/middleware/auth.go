// Package middleware provides the gin middleware chain: JWT auth,
// request logging and Prometheus metrics.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ovofarm/backoffice/internal/auth"
	"github.com/ovofarm/backoffice/internal/models"
)

const (
	// userIDKey is the gin context key for the authenticated user ID.
	userIDKey = "auth_user_id"
	// roleKey is the gin context key for the authenticated user's role.
	roleKey = "auth_role"
)

// GetUserID extracts the authenticated user ID from the gin context.
// Returns empty string if not set.
func GetUserID(c *gin.Context) string {
	id, _ := c.Get(userIDKey)
	s, _ := id.(string)
	return s
}

// GetRole extracts the authenticated user's role from the gin context.
func GetRole(c *gin.Context) models.Role {
	r, _ := c.Get(roleKey)
	s, _ := r.(string)
	return models.Role(s)
}

// RequireAuth validates the Bearer token and stores the user ID and
// role in the gin context. Requests without a valid token get a 401.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtManager)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin is RequireAuth plus a role gate: only non-customer
// accounts pass.
func RequireAdmin(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtManager)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if models.Role(claims.Role).IsCustomer() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, jwtManager *auth.JWTManager) (*auth.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, auth.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, auth.ErrInvalidToken
	}

	return jwtManager.Validate(parts[1])
}
