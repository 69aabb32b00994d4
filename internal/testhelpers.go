package internal

import "time"

// CreateTestSession creates a session with a sample two-message turn
func CreateTestSession(id string) *ChatSession {
	return &ChatSession{
		ID:             id,
		Title:          "Test Conversation",
		Preview:        "Hello, how are you?",
		LastActivityAt: time.Now(),
		Messages: []Message{
			{
				ID:        "1",
				Role:      RoleUser,
				Content:   "Hello, how are you?",
				CreatedAt: time.Now(),
			},
			{
				ID:        "2",
				Role:      RoleAssistant,
				Content:   "I'm doing well, thank you!",
				CreatedAt: time.Now(),
			},
		},
	}
}

// CreateTestSessionWithMessages creates a session with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) *ChatSession {
	title := "Untitled"
	preview := ""
	for _, msg := range messages {
		if msg.Role == RoleUser {
			if title == "Untitled" {
				title = MakeTitle(msg.Content)
			}
			preview = msg.Content
		}
	}
	return &ChatSession{
		ID:             id,
		Title:          title,
		Preview:        preview,
		LastActivityAt: time.Now(),
		Messages:       messages,
	}
}
