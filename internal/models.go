package internal

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message roles. Every message belongs to exactly one of the two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// titleLimit is the maximum number of characters kept from the first
// user message when deriving a session title.
const titleLimit = 30

// Message represents one conversation turn
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSession represents one saved conversation
type ChatSession struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Preview        string    `json:"preview"`
	LastActivityAt time.Time `json:"last_activity_at"`
	Messages       []Message `json:"messages"`
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewMessageID returns a time-based identifier. IDs handed out by the
// same process are strictly increasing, so two messages created in the
// same millisecond never collide.
func NewMessageID() string {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return strconv.FormatInt(id, 10)
}

// NewSessionID returns a globally unique session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// NewUserMessage creates a user-authored message with a fresh id.
func NewUserMessage(content string) Message {
	return Message{
		ID:        NewMessageID(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage creates an assistant-authored message with a fresh id.
func NewAssistantMessage(content string) Message {
	return Message{
		ID:        NewMessageID(),
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// MakeTitle derives a session title from the first user message.
// Titles longer than 30 characters are truncated with an ellipsis.
func MakeTitle(firstMessage string) string {
	runes := []rune(firstMessage)
	if len(runes) > titleLimit {
		return string(runes[:titleLimit]) + "..."
	}
	return firstMessage
}
