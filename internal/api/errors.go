package api

import (
	"context"
	"errors"
	"fmt"
)

// Messages used for failures that never reached an HTTP status.
const (
	MsgNetwork  = "Network error. Please check your connection."
	MsgTimeout  = "Request timed out. Please try again."
	MsgEncoding = "Request could not be encoded."
)

// Error is the uniform failure returned by the client. Status is the HTTP
// status code, or 0 when the request never got one.
type Error struct {
	Status  int
	Message string
	// Details is the decoded response body for HTTP failures, or the
	// underlying error otherwise.
	Details any
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Unwrap exposes the transport error, so errors.Is(err,
// context.DeadlineExceeded) holds for timeouts.
func (e *Error) Unwrap() error {
	if err, ok := e.Details.(error); ok {
		return err
	}
	return nil
}

// IsNetwork reports whether the request failed before an HTTP status was
// received.
func (e *Error) IsNetwork() bool {
	return e.Status == 0
}

// IsTimeout reports whether err is a client timeout.
func IsTimeout(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 0 && errors.Is(apiErr, context.DeadlineExceeded)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func httpError(status int, details any) *Error {
	msg := fmt.Sprintf("HTTP Error: %d", status)
	if m, ok := details.(map[string]any); ok {
		if s, ok := m["message"].(string); ok && s != "" {
			msg = s
		}
	}
	return &Error{Status: status, Message: msg, Details: details}
}
