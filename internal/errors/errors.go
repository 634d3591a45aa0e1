package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Error kinds. Every error produced by the persistence layer unwraps to one of these.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("resource not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// KindError is an error of a known kind with a human readable message
type KindError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *KindError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the underlying cause to errors.Is
func (e *KindError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// NewValidationError creates an error of kind ErrValidation
func NewValidationError(message string) error {
	return &KindError{Kind: ErrValidation, Message: message}
}

// NewNotFoundError creates an error of kind ErrNotFound
func NewNotFoundError(message string) error {
	return &KindError{Kind: ErrNotFound, Message: message}
}

// Unavailable wraps a storage or transport failure as ErrStoreUnavailable
func Unavailable(cause error) error {
	return &KindError{Kind: ErrStoreUnavailable, Message: ErrStoreUnavailable.Error(), Cause: cause}
}

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Respond classifies err by kind and sends the matching error response
func Respond(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ErrStoreUnavailable):
		ServiceUnavailable(c, "")
	default:
		InternalError(c, "")
	}
}

// FromResponse rebuilds a kinded error from an HTTP status and decoded error body.
// apiErr may be nil when the body could not be decoded.
func FromResponse(statusCode int, apiErr *APIError) error {
	message := http.StatusText(statusCode)
	code := ""
	if apiErr != nil {
		code = apiErr.Code
		if apiErr.Message != "" {
			message = apiErr.Message
		}
	}

	switch {
	case code == ErrCodeInvalidInput || statusCode == http.StatusBadRequest:
		return NewValidationError(message)
	case code == ErrCodeNotFound || statusCode == http.StatusNotFound:
		return NewNotFoundError(message)
	default:
		return Unavailable(NewAPIError(code, message))
	}
}

// Helper functions for common error responses

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}
