package middleware

import (
	"context"
	"net/http"
	"strings"

	"snapgram/pkg/cache"
	"snapgram/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// SessionLookup resolves a live session. A token whose session was deleted
// (signed out) or expired is rejected even if its signature is still valid.
type SessionLookup interface {
	Get(ctx context.Context, id string) (*cache.Session, error)
}

const (
	ContextAccountID = "account_id"
	ContextSessionID = "session_id"
)

func AuthMiddleware(jwtService *jwt.Service, sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if sessions != nil {
			session, err := sessions.Get(c.Request.Context(), claims.SessionID)
			if err != nil || session.AccountID != claims.AccountID {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
				c.Abort()
				return
			}
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextSessionID, claims.SessionID)
		c.Next()
	}
}
