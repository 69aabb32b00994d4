package internal

import (
	"errors"
	"fmt"
)

// Sentinel errors for fast synchronous rejections in the pipeline.
var (
	// ErrMissingCredential means no API key is configured. Callers are
	// expected to prompt the user for one.
	ErrMissingCredential = errors.New("no API key configured")

	// ErrBusy means a generation request is already in flight.
	ErrBusy = errors.New("a request is already in flight")

	// ErrBlankInput means the message was empty or whitespace-only.
	// Callers treat this as a silent no-op.
	ErrBlankInput = errors.New("message is blank")
)

// FailureKind classifies why an inference call failed
type FailureKind string

const (
	KindUnauthorized      FailureKind = "unauthorized"
	KindRateLimited       FailureKind = "rate_limited"
	KindServerError       FailureKind = "server_error"
	KindUnreachable       FailureKind = "unreachable"
	KindMalformedResponse FailureKind = "malformed_response"
)

// InferenceError represents a failed call to the remote model. All
// remote failures collapse into this one type; the Kind field lets
// callers distinguish the cause.
type InferenceError struct {
	Kind    FailureKind
	Status  int    // upstream HTTP status, 0 when unreachable
	Message string // human-readable cause
	Err     error  // underlying transport error, if any
}

func (e *InferenceError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("inference error [%s] status %d: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("inference error [%s]: %s", e.Kind, e.Message)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a session lookup miss. It indicates
// desynchronized state between the caller and the store, so it is
// surfaced loudly rather than swallowed.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// StorageError represents errors reading or writing the local store
type StorageError struct {
	Op  string // "open", "get", "set", "delete"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage error: %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
