package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// StatusError is returned for any response outside 2xx.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := truncate(strings.TrimSpace(string(e.Body)), maxBodyInError)
	return fmt.Sprintf("unexpected status %d on %s %s: %s", e.StatusCode, e.Method, e.Path, msg)
}

// maxBodyInError is how many runes of a response body Error keeps.
const maxBodyInError = 200

// truncate cuts s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

// ErrorResponse is the error body shape of the backend. Detail is either a
// string or a list of validation entries with a "msg" field.
type ErrorResponse struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationDetail struct {
	Msg string `json:"msg"`
}

// ErrorMessage extracts the user-facing message from err. Order: a string
// detail, the first msg of an array detail, message, then fallback.
func ErrorMessage(err error, fallback string) string {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return fallback
	}

	var body ErrorResponse
	if json.Unmarshal(statusErr.Body, &body) != nil {
		return fallback
	}

	if len(body.Detail) > 0 {
		var detail string
		if json.Unmarshal(body.Detail, &detail) == nil && detail != "" {
			return detail
		}

		var details []validationDetail
		if json.Unmarshal(body.Detail, &details) == nil {
			// An array detail never falls through to message.
			if len(details) > 0 && details[0].Msg != "" {
				return details[0].Msg
			}
			return fallback
		}
	}

	if body.Message != "" {
		return body.Message
	}

	return fallback
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
