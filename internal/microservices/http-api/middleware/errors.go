package middleware

import (
	"log/slog"
	"net/http"

	"churchhub/internal/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the response for the last error a handler attached with c.Error.
// Internal failures are logged with their cause and answered with a generic message.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		kind := apperror.KindOf(err)

		if kind == apperror.KindInternal {
			logger.ErrorContext(c.Request.Context(), "request failed",
				"error", err,
				"method", c.Request.Method,
				"path", c.FullPath(),
				"request_id", RequestID(c),
			)
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(kind.HTTPStatus(), gin.H{
			"message":   apperror.PublicMessage(err),
			"requestId": RequestID(c),
		})
	}
}

// Recovery turns a panic into a logged internal error.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"request_id", RequestID(c),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestId": RequestID(c),
		})
	})
}

// NotFound answers unknown routes in the common error shape.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Error(apperror.NotFound("Route not found"))
	}
}
