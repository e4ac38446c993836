package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the opaque session token.
	SessionCookie = "dukapro_session"

	userIDKey = "user_id"
)

// Authenticator resolves a session token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// RequireAuth rejects requests without a live session and stashes the
// authenticated user id in the request context. Downstream handlers trust
// this identifier unconditionally and never read it from the body.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil {
			if userID, authErr := auth.Authenticate(c.Request.Context(), token); authErr == nil {
				c.Set(userIDKey, userID)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Authentication required",
		})
	}
}

// currentUserID returns the id stashed by RequireAuth.
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
