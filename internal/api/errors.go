package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mhutchins/taskvault-api/internal/domain"
	"github.com/mhutchins/taskvault-api/internal/service/auth"
	"github.com/mhutchins/taskvault-api/internal/store"
)

// taskValidationErrors are the domain validation failures a task write can
// produce; they map to 400 with their own message, which is already safe
// to show the caller.
var taskValidationErrors = []error{
	domain.ErrEmptyTaskTitle,
	domain.ErrInvalidTaskPriority,
	domain.ErrInvalidTaskStatus,
}

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
//
// Duplicate-key failures map to 400 rather than 409: the API treats them
// as just another invalid write.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found: covers both "no such task" and "someone else's task"
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Validation and duplicate-key errors
	case isValidationError(err),
		store.IsDuplicateError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Anything unrecognized collapses to an opaque message; the real
// error belongs in the logs only.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case store.IsNotFoundError(err):
		return "Not found"

	case store.IsDuplicateError(err):
		return "Duplicate field value"

	case isValidationError(err):
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// isValidationError reports whether the error is a domain-level validation
// failure on task fields.
func isValidationError(err error) bool {
	for _, target := range taskValidationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// JoinValidationErrors flattens a validator.ValidationErrors into a single
// human-readable message, one fragment per failed field, joined with
// commas.
func JoinValidationErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Validation error"
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldErrorMessage(fe))
	}
	return strings.Join(messages, ", ")
}

// fieldErrorMessage renders one field validation failure.
func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s is too short", field)
	case "max":
		return fmt.Sprintf("%s is too long", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
