package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// requireAuth accepts "Authorization: Bearer <access token>" and stores the
// user id in the gin context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AccessTokenHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		userID, err := s.accounts.UserIDFromAccessToken(strings.TrimPrefix(header, common.BearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if uid := c.GetString(userIDKey); uid != "" {
			args = append(args, "user_id", uid)
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Error(c.Request.Context(), "request", args...)
			return
		}
		s.logger.Info(c.Request.Context(), "request", args...)
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
