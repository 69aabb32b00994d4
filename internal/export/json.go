package export

import (
	"encoding/json"
	"io"

	"github.com/khudka/khudka/internal"
)

// JSONExporter exports sessions in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports a session to JSON format
func (e *JSONExporter) Export(session *internal.ChatSession, w io.Writer) error {
	doc := struct {
		Title    string             `json:"title"`
		Messages []internal.Message `json:"messages"`
	}{
		Title:    session.Title,
		Messages: session.Messages,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
