// Package handlers provides JSON response helpers for gin handlers.
// The error shapes follow the conventions of Django REST framework so that
// clients written against it read them unchanged.
package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// RespondError logs err and aborts with {"error": "<message>"}.
func RespondError(c *gin.Context, logger *slog.Logger, status int, err error) {
	logError(logger, status, err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// RespondDetail aborts with {"detail": "<message>"}, the shape used for
// authentication and permission failures.
func RespondDetail(c *gin.Context, logger *slog.Logger, status int, err error) {
	logError(logger, status, err)
	c.AbortWithStatusJSON(status, gin.H{"detail": err.Error()})
}

// RespondFields aborts with a field-keyed error object such as
// {"email": ["..."]}.
func RespondFields(c *gin.Context, logger *slog.Logger, status int, fields map[string][]string) {
	logger.Warn("validation failed", "status", status, "fields", len(fields))
	c.AbortWithStatusJSON(status, fields)
}

// RespondMessage writes {"message": "<text>"}.
func RespondMessage(c *gin.Context, status int, text string) {
	c.JSON(status, gin.H{"message": text})
}

func logError(logger *slog.Logger, status int, err error) {
	if status >= 500 {
		logger.Error("handler error", "error", err, "status", status)
		return
	}
	logger.Warn("handler error", "error", err, "status", status)
}
