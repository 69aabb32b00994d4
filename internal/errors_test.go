package internal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestInferenceError(t *testing.T) {
	originalErr := errors.New("connection refused")
	err := &InferenceError{
		Kind:    KindUnreachable,
		Message: "connection refused",
		Err:     originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "inference error") {
		t.Errorf("InferenceError.Error() should contain 'inference error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, string(KindUnreachable)) {
		t.Errorf("InferenceError.Error() should contain kind, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("InferenceError.Unwrap() should return original error")
	}
}

func TestInferenceError_WithStatus(t *testing.T) {
	err := &InferenceError{
		Kind:    KindRateLimited,
		Status:  429,
		Message: "quota exceeded",
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "429") {
		t.Errorf("InferenceError.Error() should contain status, got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "quota exceeded") {
		t.Errorf("InferenceError.Error() should contain message, got: %q", errorMsg)
	}
}

func TestInferenceError_As(t *testing.T) {
	var wrapped error = fmt.Errorf("send failed: %w", &InferenceError{
		Kind:    KindServerError,
		Status:  500,
		Message: "internal",
	})

	var infErr *InferenceError
	if !errors.As(wrapped, &infErr) {
		t.Fatal("errors.As() should find InferenceError through wrapping")
	}
	if infErr.Kind != KindServerError {
		t.Errorf("Kind = %q, want %q", infErr.Kind, KindServerError)
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{ID: "session-42"}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "not found") {
		t.Errorf("NotFoundError.Error() should contain 'not found', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "session-42") {
		t.Errorf("NotFoundError.Error() should contain id, got: %q", errorMsg)
	}
}

func TestStorageError(t *testing.T) {
	originalErr := errors.New("database is locked")
	err := &StorageError{
		Op:  "set",
		Key: "sessions",
		Err: originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "storage error") {
		t.Errorf("StorageError.Error() should contain 'storage error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "sessions") {
		t.Errorf("StorageError.Error() should contain key, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("StorageError.Unwrap() should return original error")
	}
}
