package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, errorResponse{Error: message})
}

// respondError is the single place handler failures become HTTP responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExportUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("ERROR: [%s] %s %s: %v", requestIDFromContext(c), c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

// bindError turns a gin binding failure into a validation error.
func bindError(err error) error {
	return fmt.Errorf("%w: %s", service.ErrValidationFailed, describeBindError(err))
}
