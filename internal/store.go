package internal

import (
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite"
)

// Storage keys. The whole client state lives under three keys.
const (
	KeyCredential = "credential"
	KeySessions   = "sessions"
	KeyUserInfo   = "user-info"
)

// KV is a durable string key-value store. Absence of a key is a valid
// state and is distinguished from an empty value.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// SQLiteKV implements KV on top of a single-table SQLite database.
type SQLiteKV struct {
	db *sql.DB
}

// OpenKV opens (creating if needed) the key-value database at path.
// Pass ":memory:" for an ephemeral store.
func OpenKV(path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	// One connection: avoids writer lock contention, and keeps
	// ":memory:" databases from splitting across pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	return &SQLiteKV{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

// Get returns the value for key. ok is false when the key is absent.
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

// Set writes value under key, replacing any previous value.
func (s *SQLiteKV) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *SQLiteKV) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return &StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// SetCredential stores the API key.
func SetCredential(kv KV, apiKey string) error {
	return kv.Set(KeyCredential, apiKey)
}

// Credential returns the stored API key. ok is false when none is set.
func Credential(kv KV) (string, bool, error) {
	return kv.Get(KeyCredential)
}

// UserInfo identifies the logged-in user
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SetUserInfo stores the logged-in user's identity.
func SetUserInfo(kv KV, info UserInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return kv.Set(KeyUserInfo, string(data))
}

// LoadUserInfo returns the stored identity. ok is false when nobody is
// logged in.
func LoadUserInfo(kv KV) (UserInfo, bool, error) {
	raw, ok, err := kv.Get(KeyUserInfo)
	if err != nil || !ok {
		return UserInfo{}, false, err
	}

	var info UserInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return UserInfo{}, false, &StorageError{Op: "get", Key: KeyUserInfo, Err: err}
	}
	return info, true, nil
}
