package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

const internalErrorMessage = "internal server error"

// ErrorHandler renders the last error attached to context as {"message": ...}.
// Internal errors keep their text outside production.
func ErrorHandler(production bool, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusFor(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			logger.Error("request failed",
				slog.String("path", c.Request.URL.Path),
				slog.String("request_id", c.GetString(RequestIDContextKey)),
				slog.String("error", err.Error()),
			)
			if production {
				message = internalErrorMessage
			}
		}
		c.JSON(status, dto.ErrorResponse{Message: message})
	}
}

// StatusFor maps domain error classes to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
