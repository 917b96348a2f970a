package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrTransport = errors.New("transport error")
	ErrDecode    = errors.New("decode error")
	ErrNotFound  = errors.New("not found")
)

// TransportError reports a network failure or a non-success HTTP status.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	if target == ErrTransport {
		return true
	}
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// DecodeError reports a success response whose body does not match the expected shape.
type DecodeError struct {
	Resource string
	Err      error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Resource, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
