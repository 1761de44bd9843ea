package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "string detail",
			err:  &StatusError{StatusCode: 401, Body: []byte(`{"detail":"Invalid credentials"}`)},
			want: "Invalid credentials",
		},
		{
			name: "array detail uses first msg",
			err:  &StatusError{StatusCode: 422, Body: []byte(`{"detail":[{"msg":"bad email"},{"msg":"short"}]}`)},
			want: "bad email",
		},
		{
			name: "array detail does not fall through to message",
			err:  &StatusError{StatusCode: 422, Body: []byte(`{"detail":[],"message":"ignored"}`)},
			want: "fallback",
		},
		{
			name: "message when no detail",
			err:  &StatusError{StatusCode: 400, Body: []byte(`{"message":"Email taken"}`)},
			want: "Email taken",
		},
		{
			name: "empty string detail falls through to message",
			err:  &StatusError{StatusCode: 400, Body: []byte(`{"detail":"","message":"Email taken"}`)},
			want: "Email taken",
		},
		{
			name: "non-json body",
			err:  &StatusError{StatusCode: 502, Body: []byte(`<html>Bad Gateway</html>`)},
			want: "fallback",
		},
		{
			name: "transport error",
			err:  errors.New("connection refused"),
			want: "fallback",
		},
		{
			name: "wrapped status error",
			err:  fmt.Errorf("login: %w", &StatusError{StatusCode: 401, Body: []byte(`{"detail":"nope"}`)}),
			want: "nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err, "fallback"))
		})
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Method: "GET", Path: "/tasks/u1", StatusCode: http.StatusForbidden, Body: []byte(`{"detail":"no"}`)}

	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "/tasks/u1")
	assert.Equal(t, http.StatusForbidden, StatusCode(fmt.Errorf("wrap: %w", err)))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))

	long := &StatusError{StatusCode: 500, Body: make([]byte, 500)}
	for i := range long.Body {
		long.Body[i] = 'x'
	}
	assert.Less(t, len(long.Error()), 300)

	wide := &StatusError{StatusCode: 500, Body: []byte(strings.Repeat("é", 300))}
	msg := wide.Error()
	assert.True(t, utf8.ValidString(msg))
	assert.True(t, strings.HasSuffix(msg, strings.Repeat("é", 200)+"..."))
}
