package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cleancity/api/internal/limiter"
	"github.com/cleancity/api/internal/validator"
	"github.com/gin-gonic/gin"
)

var (
	errBadRequest = errors.New("bad request")
	errTooLarge   = errors.New("request body too large")
)

// bindError turns a gin binding failure into a field-level validation
// error, a too-large error, or a generic bad request.
func bindError(err error, msg string) error {
	if verr, ok := validator.FromBinding(err); ok {
		return verr
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %d bytes", errTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: %s", errBadRequest, msg)
}

// writeInputError maps binding and validation failures to a 400, or 413
// for an oversized body.
func writeInputError(c *gin.Context, err error) {
	var verr *validator.ValidationError
	switch {
	case errors.Is(err, errTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, validator.ErrInvalidPhoto), errors.Is(err, errBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// allow runs the limiter for the client and sets the rate limit headers.
// A nil limiter allows everything.
func allow(c *gin.Context, l *limiter.Limiter, action string) bool {
	if l == nil {
		return true
	}

	result := l.Check(c.Request.Context(), c.ClientIP(), action)
	if result.Limit > 0 {
		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))
	}
	return result.Allowed
}
