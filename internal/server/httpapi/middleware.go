package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

// protect resolves the bearer token to a user and stores it on the context.
// Missing, malformed, invalid or expired tokens and deleted users all get 401.
func (s *HTTPServer) protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Message{Message: "Not authorized, no token"})
			return
		}

		user, err := s.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "token rejected", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Message{Message: "Not authorized, token failed"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// currentUser returns the user set by protect.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userKey).(*models.User)
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func (s *HTTPServer) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		s.logger.Error(c.Request.Context(), "panic", "recovered", rec, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.Message{Message: "Internal server error"})
	})
}
