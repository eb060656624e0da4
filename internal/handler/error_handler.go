package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"taskboard-api/internal/response"
)

// handleServiceError maps service layer errors to appropriate HTTP responses
func handleServiceError(c *gin.Context, err error) {
	// Check for GORM errors that escaped the service layer
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	// Check for custom AppError. Validation details are safe to echo back;
	// other details may carry storage internals and stay server-side.
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		details := ""
		if appErr.Code == response.ErrCodeValidation {
			details = appErr.Details
		}
		response.SendErrorDetails(c, mapErrorCodeToHTTPStatus(appErr.Code), appErr.Code, appErr.Message, details)
		return
	}

	// Default to internal server error
	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

// handleBindingError rejects a request whose body failed binding, naming the
// offending fields when the failure came from struct validation
func handleBindingError(c *gin.Context, err error) {
	response.SendErrorDetails(c, http.StatusBadRequest, response.ErrCodeValidation,
		"Invalid request body", bindingErrorDetails(err))
}

// bindingErrorDetails flattens validator errors into a field-by-field summary
func bindingErrorDetails(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		parts := make([]string, 0, len(fieldErrors))
		for _, fieldError := range fieldErrors {
			parts = append(parts, fmt.Sprintf("%s failed on the '%s' rule", fieldError.Field(), fieldError.Tag()))
		}
		return strings.Join(parts, "; ")
	}
	return err.Error()
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case response.ErrCodeNotFound:
		return http.StatusNotFound
	case response.ErrCodeAlreadyExists, response.ErrCodeConflict:
		return http.StatusConflict
	case response.ErrCodeValidation:
		return http.StatusBadRequest
	case response.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case response.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
