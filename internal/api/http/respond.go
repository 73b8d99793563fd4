package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectpulse/pm-backend/internal/domain"
)

// Success writes the standard success envelope.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// Fail maps a service error to a status code and writes the error envelope.
// Validation failures carry the per-field messages; timeouts are reported as
// retryable.
func Fail(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": ve.Errors,
		})
		return
	}

	var ie *domain.IntegrityError
	if errors.As(err, &ie) {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": ie.Reason})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success":   false,
			"error":     "store timeout, please retry",
			"retryable": true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}

// BadRequest rejects a malformed body before it reaches any service.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
