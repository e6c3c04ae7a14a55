package registrysdk

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable means the registration API could not be reached or
	// answered with something that was not a usable response body.
	ErrBackendUnavailable = errors.New("registrysdk: backend unavailable")

	// ErrBackendRejected means the registration API answered with a non-2xx
	// status.
	ErrBackendRejected = errors.New("registrysdk: backend rejected request")
)

// BackendError describes a failed upstream call. It matches exactly one of
// ErrBackendUnavailable or ErrBackendRejected under errors.Is.
type BackendError struct {
	Kind       error  // ErrBackendUnavailable or ErrBackendRejected
	Op         string // e.g. "get client"
	StatusCode int    // zero when no response was received
	Message    string // upstream message, never shown to end users
	Err        error  // underlying transport or decode error, if any
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: %v: HTTP %d: %s", e.Op, e.Kind, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %v: HTTP %d", e.Op, e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
}

// Is reports whether target is the kind of this error.
func (e *BackendError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause.
func (e *BackendError) Unwrap() error {
	return e.Err
}

func unavailable(op string, status int, err error) *BackendError {
	return &BackendError{Kind: ErrBackendUnavailable, Op: op, StatusCode: status, Err: err}
}

func rejected(op string, status int, message string) *BackendError {
	return &BackendError{Kind: ErrBackendRejected, Op: op, StatusCode: status, Message: message}
}
