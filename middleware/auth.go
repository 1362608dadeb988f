package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auth"
)

// UserLookup resolves the user behind a token. auth.Service satisfies it.
type UserLookup interface {
	GetUserByID(ctx context.Context, userID uint) (*auth.User, error)
}

// AuthMiddleware handles JWT authentication from the Authorization header.
func AuthMiddleware(cfg *config.Config, users UserLookup) gin.HandlerFunc {
	return authenticate(cfg, users, false)
}

// StreamAuthMiddleware also accepts ?token= because EventSource and
// browser WebSocket clients cannot set headers.
func StreamAuthMiddleware(cfg *config.Config, users UserLookup) gin.HandlerFunc {
	return authenticate(cfg, users, true)
}

func authenticate(cfg *config.Config, users UserLookup, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, msg := bearerToken(c, allowQuery)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID, err := auth.ParseUserID(tokenStr, cfg.JWTAccessSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set("user", *user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

func bearerToken(c *gin.Context, allowQuery bool) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if allowQuery {
			if t := c.Query("token"); t != "" {
				return t, ""
			}
		}
		return "", "missing Authorization header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", "invalid Authorization header"
	}
	return strings.TrimSpace(parts[1]), ""
}
