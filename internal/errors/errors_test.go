package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthenticationError(t *testing.T) {
	cause := errors.New("401")
	err := NewAuthenticationError("Invalid email or password", cause)

	assert.Equal(t, ErrorTypeAuthentication, err.Type)
	assert.Equal(t, "AUTH_FAILED", err.Code)
	assert.Equal(t, "Invalid email or password", GetUserMessage(err))
	assert.ErrorIs(t, err, cause)
}

func TestNewMutationError(t *testing.T) {
	err := NewMutationError("delete", "task", errors.New("boom"))

	op, ok := err.GetContext("operation")
	require.True(t, ok)
	assert.Equal(t, "delete", op)
	assert.Equal(t, "could not delete task, please try again", GetUserMessage(err))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("title", "title is required")

	assert.Nil(t, err.Cause)
	assert.Equal(t, "validation: title is required", err.Error())
	field, _ := err.GetContext("field")
	assert.Equal(t, "title", field)
}

func TestIsErrorType(t *testing.T) {
	wrapped := fmt.Errorf("loading tasks: %w", NewFetchError("tasks", "could not load tasks", nil))

	assert.True(t, IsErrorType(wrapped, ErrorTypeFetch))
	assert.False(t, IsErrorType(wrapped, ErrorTypeSessionExpired))
	assert.False(t, IsErrorType(errors.New("plain"), ErrorTypeFetch))
}

func TestAppError_Is(t *testing.T) {
	a := NewSessionExpiredError(nil)
	b := NewSessionExpiredError(errors.New("other cause"))

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, NewFetchError("x", "y", nil)))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("network down"), "network down"},
		{"session", NewSessionExpiredError(nil), "your session has expired, please sign in again"},
		{"fetch", NewFetchError("practice", "Failed to load practice platforms", nil), "Failed to load practice platforms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetUserMessage(tt.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, "VALIDATION_FAILED", GetErrorCode(NewValidationError("f", "m")))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("x")))
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "mutation", ErrorTypeMutation.String())
	assert.Equal(t, "unknown", ErrorType(99).String())
}
