package internal

import "fmt"

// maxAttachmentSize caps attached files at 10MB.
const maxAttachmentSize = 10 << 20

// AttachFilePlaceholder appends a file placeholder to the outgoing
// draft text. Attachments have no durable effect beyond the placeholder.
func AttachFilePlaceholder(draft, filename string, size int64) (string, error) {
	if size > maxAttachmentSize {
		return draft, fmt.Errorf("file too large: %s exceeds 10MB limit", filename)
	}
	if draft != "" {
		draft += "\n"
	}
	return draft + fmt.Sprintf("[File: %s]", filename), nil
}

// AttachVoicePlaceholder appends a voice-message placeholder to the
// outgoing draft text.
func AttachVoicePlaceholder(draft string) string {
	if draft != "" {
		draft += "\n"
	}
	return draft + "[Voice message]"
}
