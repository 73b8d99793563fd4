package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout caps the store round-trips of a single request. A request that
// exceeds it surfaces context.DeadlineExceeded, reported to the caller as
// retryable rather than silently dropped.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
