package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across services and mapped to HTTP statuses by the handlers.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION_ERROR"
	CodeOwnerMismatch = "OWNER_MISMATCH"
	CodeConflict      = "CONFLICT"
	CodeUnavailable   = "ITEM_UNAVAILABLE"
	CodeInternal      = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("No %s with id %v", resource, id),
	}
}

// NewNotFoundMessage builds a NOT_FOUND error with a verbatim message, for
// cases where "not found" deliberately hides a permission failure.
func NewNotFoundMessage(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewOwnerMismatchError signals that the acting user is, or is not, the owner
// of the item when the operation requires the opposite. Mapped to 404 rather
// than 403 so resource existence is not revealed to non-owners.
func NewOwnerMismatchError(message string) *AppError {
	return &AppError{
		Code:    CodeOwnerMismatch,
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

func NewUnavailableError(message string) *AppError {
	return &AppError{
		Code:    CodeUnavailable,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		// Internal details are never surfaced to clients.
		if appErr.Code != CodeInternal && appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
