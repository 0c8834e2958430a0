package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
	UserID  uint   `json:"user_id,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
	// UserID identifies the offending user for batch failures (e.g. an
	// invitee who is not a friend).
	UserID uint
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

// Error codes used across services and handlers.
const (
	CodeNotFound              = "NOT_FOUND"
	CodeValidation            = "VALIDATION_ERROR"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodeInvalidState          = "INVALID_STATE"
	CodeConflict              = "CONFLICT"
	CodeInsufficientResources = "INSUFFICIENT_RESOURCES"
	CodePreconditionFailed    = "PRECONDITION_FAILED"
	CodeInternal              = "INTERNAL_ERROR"
)

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewForbiddenError signals that the actor lacks the required relationship
// (not owner, not participant, not recipient).
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

// NewInvalidStateError signals an operation that is not valid in the current
// lifecycle state, such as uncompleting a task that is still active.
func NewInvalidStateError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidState,
		Message: message,
	}
}

// NewConflictError signals a uniqueness or exclusivity violation, such as a
// duplicate friend request or an already-owned item.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

// NewInsufficientResourcesError signals not enough gold, XP, or rank for a
// purchase or unlock.
func NewInsufficientResourcesError(message string) *AppError {
	return &AppError{
		Code:    CodeInsufficientResources,
		Message: message,
	}
}

// NewPreconditionFailedError signals a failed relationship precondition, such
// as inviting a collaborator who is not a friend. userID identifies the
// offending user when the failure concerns one.
func NewPreconditionFailedError(message string, userID uint) *AppError {
	return &AppError{
		Code:    CodePreconditionFailed,
		Message: message,
		UserID:  userID,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HTTPStatus maps an error to the HTTP status code it should be reported with.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeValidation, CodeInvalidState, CodeInsufficientResources:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeConflict:
		return fiber.StatusConflict
	case CodePreconditionFailed:
		return fiber.StatusPreconditionFailed
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error:  appErr.Message,
			Code:   appErr.Code,
			UserID: appErr.UserID,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
