package export

import (
	"fmt"
	"io"
	"time"

	"github.com/khudka/khudka/internal"
)

// TextExporter exports sessions as plain text
type TextExporter struct{}

// Export exports a session to plain text, one block per message.
func (e *TextExporter) Export(session *internal.ChatSession, w io.Writer) error {
	for i, msg := range session.Messages {
		if i > 0 {
			if _, err := fmt.Fprint(w, "\n\n"); err != nil {
				return err
			}
		}
		ts := msg.CreatedAt.Format(time.RFC1123)
		if _, err := fmt.Fprintf(w, "%s (%s): %s", speaker(msg.Role), ts, msg.Content); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Extension returns the file extension for this format
func (e *TextExporter) Extension() string {
	return "txt"
}
