// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is / errors.As to match these
// values.
package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSnoo is the root of every error returned by the library.
	ErrSnoo = errors.New("snoo error")

	// Auth errors.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrSnoo)
	ErrAuthentication     = fmt.Errorf("%w: authentication failed", ErrSnoo)

	// Transport / remote errors.
	ErrRequest            = fmt.Errorf("%w: request failed", ErrSnoo)
	ErrUnexpectedResponse = fmt.Errorf("%w: unexpected response", ErrSnoo)

	// Validation errors raised before any network call.
	ErrInvalidEntry = fmt.Errorf("%w: invalid journal entry", ErrSnoo)
)

// RequestError describes a non-auth HTTP failure. StatusCode is zero when the
// request never produced a response (the retry ceiling was hit on transport
// errors); Err then holds the last transport error.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && len(e.Body) > 0:
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), truncate(e.Body, 256))
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s %s: request failed", e.Method, e.URL)
	}
}

// Unwrap exposes both ErrRequest and the underlying cause.
func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRequest}
	}
	return []error{ErrRequest, e.Err}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
