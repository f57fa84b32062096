package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

// RequireSession rejects requests the gate could not attach a session to,
// and blocked accounts.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			log.Println("[AUTH] [ERROR] missing session")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if claims.Role == models.RoleBlocked {
			log.Println("[AUTH] [ERROR] blocked account:", claims.Email)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is blocked"})
			return
		}
		c.Next()
	}
}
