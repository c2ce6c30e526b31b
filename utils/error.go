package utils

import (
	"errors"
	"net/http"

	"stayhub/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a domain error to its HTTP status and writes the response.
func RespondError(c *gin.Context, err error) {
	var (
		notFound      *errs.NotFoundError
		validation    *errs.ValidationError
		unauthorized  *errs.UnauthorizedError
		accessDenied  *errs.AccessDeniedError
		conflict      *errs.ConflictError
		invalidStatus *errs.InvalidStatusError
		bookingData   *errs.BookingDataError
		session       *errs.SessionError
		registration  *errs.RegistrationError
	)

	switch {
	case errors.As(err, &notFound):
		JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.As(err, &validation):
		JSONError(c, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.As(err, &unauthorized):
		JSONError(c, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.As(err, &accessDenied):
		JSONError(c, http.StatusForbidden, "Access denied", err.Error())
	case errors.As(err, &conflict):
		JSONError(c, http.StatusConflict, "Booking conflict", err.Error())
	case errors.As(err, &invalidStatus):
		JSONError(c, http.StatusConflict, "Invalid status", err.Error())
	case errors.As(err, &bookingData):
		JSONError(c, http.StatusBadRequest, "Invalid booking data", err.Error())
	case errors.As(err, &registration):
		JSONError(c, http.StatusBadRequest, "Registration failed", err.Error())
	case errors.As(err, &session):
		JSONError(c, http.StatusBadGateway, "Payment provider error", err.Error())
	default:
		GetLogger().Error("Unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal Server Error",
		})
	}
}
