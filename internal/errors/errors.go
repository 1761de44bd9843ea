package errors

import (
	"errors"
)

// NewAuthenticationError creates an error for a rejected login or
// registration. message is already user-facing.
func NewAuthenticationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeAuthentication,
		Message: message,
		Code:    "AUTH_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewSessionExpiredError creates an error for a profile fetch that
// invalidated the stored identity.
func NewSessionExpiredError(cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeSessionExpired,
		Message: "your session has expired, please sign in again",
		Code:    "SESSION_EXPIRED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewFetchError creates a non-fatal error for a secondary collection fetch.
func NewFetchError(resource string, message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeFetch,
		Message: message,
		Code:    "FETCH_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"resource": resource,
		},
	}
}

// NewMutationError creates an error for a failed create/update/delete.
func NewMutationError(operation string, resource string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeMutation,
		Message: "could not " + operation + " " + resource,
		Code:    "MUTATION_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
			"resource":  resource,
		},
	}
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Context: map[string]interface{}{
			"field": field,
		},
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns the plain inline text shown to the user.
func GetUserMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeAuthentication, ErrorTypeValidation, ErrorTypeFetch, ErrorTypeSessionExpired:
			return appErr.Message
		case ErrorTypeMutation:
			return appErr.Message + ", please try again"
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}
