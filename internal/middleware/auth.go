package middleware

import (
	"strings"

	"github.com/briefbox/brief-core/internal/pkg/jwt"
	"github.com/briefbox/brief-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextKeyUserID = "user_id"

	bearerPrefix = "Bearer "
)

// Auth returns a middleware that enforces bearer token authentication.
// It runs before any handler logic; no API route is reachable without a
// verified identity.
func Auth(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Unauthorized(c, "No token provided")
			return
		}

		claims, err := jwt.Parse(header[len(bearerPrefix):])
		if err != nil {
			log.Warn("authentication error",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.Unauthorized(c, "Invalid token")
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}
