package middleware

import (
	"churchhub/internal/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ValidIDParams rejects requests whose named path parameters are present but
// not UUIDs. Such ids can never match a row, so they answer NotFound before
// reaching the store.
func ValidIDParams(names ...string) gin.HandlerFunc {
	if len(names) == 0 {
		names = []string{"id"}
	}
	return func(c *gin.Context) {
		for _, name := range names {
			value := c.Param(name)
			if value == "" {
				continue
			}
			if _, err := uuid.Parse(value); err != nil {
				c.Error(apperror.NotFound("Resource not found"))
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
