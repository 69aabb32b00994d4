package internal

import (
	"encoding/json"
	"time"
)

// SessionStore owns the in-memory collection of chat sessions and the
// active-session pointer. Sessions are held newest-created-first. Every
// mutation is immediately serialized to the backing KV store; a failed
// write is reported once and the in-memory state stays authoritative.
type SessionStore struct {
	kv       KV
	sessions []*ChatSession
	activeID string // "" means no active session (fresh draft)
}

// NewSessionStore creates a store backed by kv and loads any previously
// persisted sessions.
func NewSessionStore(kv KV) (*SessionStore, error) {
	s := &SessionStore{kv: kv}

	raw, ok, err := kv.Get(KeySessions)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.sessions); err != nil {
			return nil, &StorageError{Op: "get", Key: KeySessions, Err: err}
		}
	}

	return s, nil
}

// CreateDraft clears the active pointer. Nothing is persisted until the
// draft's first turn completes.
func (s *SessionStore) CreateDraft() {
	s.activeID = ""
}

// ActiveID returns the id of the active session, or "" for a fresh draft.
func (s *SessionStore) ActiveID() string {
	return s.activeID
}

// List returns all sessions, newest-created-first.
func (s *SessionStore) List() []*ChatSession {
	out := make([]*ChatSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// ActiveMessages returns the message sequence of the active session, or
// nil for a fresh draft.
func (s *SessionStore) ActiveMessages() []Message {
	if sess := s.find(s.activeID); sess != nil {
		return sess.Messages
	}
	return nil
}

// Select makes the session with the given id active and returns its
// message sequence.
func (s *SessionStore) Select(id string) ([]Message, error) {
	sess := s.find(id)
	if sess == nil {
		return nil, &NotFoundError{ID: id}
	}
	s.activeID = id
	return sess.Messages, nil
}

// Delete removes the session with the given id. Deleting the active
// session resets the active pointer. Deleting an unknown id is a no-op.
func (s *SessionStore) Delete(id string) {
	for i, sess := range s.sessions {
		if sess.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			if s.activeID == id {
				s.activeID = ""
			}
			s.persist()
			return
		}
	}
}

// CommitTurn records one completed turn. With activeID == "" a new
// session is synthesized from the user message, prepended to the
// collection and made active. Otherwise both messages are appended to
// the matching session; a non-empty activeID that matches nothing is a
// contract violation and returns NotFoundError.
func (s *SessionStore) CommitTurn(activeID string, user, assistant Message) (*ChatSession, error) {
	if activeID == "" {
		sess := &ChatSession{
			ID:             NewSessionID(),
			Title:          MakeTitle(user.Content),
			Preview:        user.Content,
			LastActivityAt: time.Now(),
			Messages:       []Message{user, assistant},
		}
		s.sessions = append([]*ChatSession{sess}, s.sessions...)
		s.activeID = sess.ID
		s.persist()
		return sess, nil
	}

	sess := s.find(activeID)
	if sess == nil {
		return nil, &NotFoundError{ID: activeID}
	}

	sess.Messages = append(sess.Messages, user, assistant)
	sess.Preview = user.Content
	sess.LastActivityAt = time.Now()
	s.persist()
	return sess, nil
}

// PrepareRegenerate finds the most recent user turn in the given
// session and, when the session ends with an assistant turn, discards
// that turn. It returns the user text to replay. ok is false when the
// session does not exist or holds no user turn.
func (s *SessionStore) PrepareRegenerate(id string) (string, bool) {
	sess := s.find(id)
	if sess == nil {
		return "", false
	}

	var userText string
	found := false
	for i := len(sess.Messages) - 1; i >= 0; i-- {
		if sess.Messages[i].Role == RoleUser {
			userText = sess.Messages[i].Content
			found = true
			break
		}
	}
	if !found {
		return "", false
	}

	if n := len(sess.Messages); n > 0 && sess.Messages[n-1].Role == RoleAssistant {
		sess.Messages = sess.Messages[:n-1]
		s.persist()
	}

	return userText, true
}

// CommitAssistant appends a regenerated assistant turn to the given
// session. The prior user turn is retained, not re-appended.
func (s *SessionStore) CommitAssistant(id string, assistant Message) (*ChatSession, error) {
	sess := s.find(id)
	if sess == nil {
		return nil, &NotFoundError{ID: id}
	}

	sess.Messages = append(sess.Messages, assistant)
	sess.LastActivityAt = time.Now()
	s.persist()
	return sess, nil
}

// Wipe removes every session and the active pointer. Used on logout.
func (s *SessionStore) Wipe() error {
	s.sessions = nil
	s.activeID = ""
	return s.kv.Delete(KeySessions)
}

func (s *SessionStore) find(id string) *ChatSession {
	if id == "" {
		return nil
	}
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

// persist serializes the full collection to the KV store. Write
// failures do not roll back the in-memory mutation.
func (s *SessionStore) persist() {
	data, err := json.Marshal(s.sessions)
	if err != nil {
		LogWarn("failed to serialize sessions: %v", err)
		return
	}
	if err := s.kv.Set(KeySessions, string(data)); err != nil {
		LogWarn("failed to persist sessions: %v", err)
	}
}
