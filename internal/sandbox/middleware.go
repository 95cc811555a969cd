package sandbox

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/pkg/handlers"
)

const userKey = "printmg.user"

// authenticate resolves the bearer token to an account and stores it on the
// gin context.
func (s *Sandbox) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			handlers.RespondDetail(c, s.logger, MapHTTPStatus(ErrNotAuthenticated), ErrNotAuthenticated)
			return
		}

		claims, err := s.tokens.verify(strings.TrimSpace(token))
		if err != nil {
			s.logger.Debug("token rejected", "error", err)
			handlers.RespondDetail(c, s.logger, MapHTTPStatus(ErrInvalidToken), ErrInvalidToken)
			return
		}

		user, ok := s.state.userByEmail(claims.Subject)
		if !ok {
			handlers.RespondDetail(c, s.logger, MapHTTPStatus(ErrInvalidToken), ErrInvalidToken)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// requireAdmin must run after authenticate.
func requireAdmin(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c).Role != backend.RoleAdmin {
			handlers.RespondDetail(c, logger, MapHTTPStatus(ErrForbidden), ErrForbidden)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) backend.User {
	v, _ := c.Get(userKey)
	u, _ := v.(backend.User)
	return u
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
