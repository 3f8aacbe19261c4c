package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrServerUnreachable wraps transport failures where no response arrived.
	ErrServerUnreachable = errors.New("server unreachable")

	ErrBadRequest      = errors.New("bad request")
	ErrUnauthorized    = errors.New("client unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrRequestTimeout  = errors.New("request timeout")
	ErrConflict        = errors.New("conflict")
	ErrUnprocessable   = errors.New("unprocessable entity")
	ErrTooManyRequests = errors.New("too many requests")
	ErrServerError     = errors.New("server error")

	ErrUnknownArea = errors.New("unknown queue area")
)

// StatusError is a non-2xx answer from the server.
type StatusError struct {
	StatusCode int
	Message    string
	// DistanceFromBin is set on geofence rejections.
	DistanceFromBin *float64

	kind error
}

// NewStatusError builds the error for a status code; it matches the
// sentinel of that code with errors.Is.
func NewStatusError(code int, message string) *StatusError {
	kind := statusSentinels[code]
	if kind == nil && code >= http.StatusInternalServerError {
		kind = ErrServerError
	}
	return &StatusError{StatusCode: code, Message: message, kind: kind}
}

func (e *StatusError) Error() string {
	if e.kind == nil {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.kind
}
