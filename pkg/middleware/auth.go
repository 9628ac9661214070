package middleware

import (
	"net/http"
	"strings"

	"damai-site/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ContextAdminID = "admin_id"
	ContextClaims  = "session_claims"
)

// AuthMiddleware accepts "Authorization: Bearer <token>", rejects revoked
// sessions, and stores the admin id and claims on the gin context.
func AuthMiddleware(jwtService *jwt.Service, revoker *jwt.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session check failed"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has been revoked"})
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// ClaimsFrom returns the session claims stored by AuthMiddleware.
func ClaimsFrom(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
