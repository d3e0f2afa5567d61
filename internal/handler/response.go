package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tdstrack/internal/domain"
	"tdstrack/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrInvalidGSTIN):
		return http.StatusBadRequest, "INVALID_GSTIN", err.Error()
	case errors.Is(err, domain.ErrInvalidPAN):
		return http.StatusBadRequest, "INVALID_PAN", err.Error()
	case errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest, "INVALID_PERIOD", err.Error()
	case errors.Is(err, domain.ErrInvalidPaymentStatus):
		return http.StatusBadRequest, "INVALID_PAYMENT_STATUS", err.Error()
	case errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusBadRequest, "NEGATIVE_AMOUNT", "payment amounts must not be negative"
	case errors.Is(err, domain.ErrEmptyWorkbook):
		return http.StatusBadRequest, "EMPTY_WORKBOOK", "spreadsheet has no parseable invoice rows"
	case errors.Is(err, domain.ErrSourceFileMissing):
		return http.StatusNotFound, "SOURCE_FILE_MISSING", "original spreadsheet is not archived for this GSTIN"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Printf("[%s] internal error: %v", middleware.RequestIDFrom(c), err)
	}
	RespondError(c, status, code, msg)
}
