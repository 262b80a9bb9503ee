package api

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	KindUnreachable ErrorKind = iota
	KindStatus
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by every Client call that did not produce a usable response body.
type Error struct {
	Kind       ErrorKind
	Method     string
	Path       string
	StatusCode int
	Status     string
	// Message is the "message" field of the error body, if the backend sent one.
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Message != "" {
			return fmt.Sprintf("%s %s: %s: %s", e.Method, e.Path, e.Status, e.Message)
		}
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Status)
	case KindMalformed:
		return fmt.Sprintf("%s %s: malformed response: %s", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: backend unreachable: %s", e.Method, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindStatus && apiErr.StatusCode == http.StatusNotFound
}

// Message returns the message the backend attached to err, or fallback when there is none.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
