package testutil

import (
	"testing"

	"github.com/khudka/khudka/internal"
)

// OpenTestKV creates an in-memory key-value store for testing
func OpenTestKV(t *testing.T) *internal.SQLiteKV {
	t.Helper()
	kv, err := internal.OpenKV(":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

// OpenTestKVAt creates a file-backed key-value store for testing
func OpenTestKVAt(t *testing.T, path string) *internal.SQLiteKV {
	t.Helper()
	kv, err := internal.OpenKV(path)
	if err != nil {
		t.Fatalf("Failed to open store at %s: %v", path, err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

// SetCredential stores an API key, failing the test on error
func SetCredential(t *testing.T, kv internal.KV, apiKey string) {
	t.Helper()
	if err := internal.SetCredential(kv, apiKey); err != nil {
		t.Fatalf("Failed to set credential: %v", err)
	}
}

// NewTestStore creates a session store over an in-memory KV
func NewTestStore(t *testing.T) (*internal.SessionStore, *internal.SQLiteKV) {
	t.Helper()
	kv := OpenTestKV(t)
	store, err := internal.NewSessionStore(kv)
	if err != nil {
		t.Fatalf("Failed to create session store: %v", err)
	}
	return store, kv
}
