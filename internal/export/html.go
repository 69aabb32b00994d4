package export

import (
	"html/template"
	"io"

	"github.com/khudka/khudka/internal"
)

// HTMLExporter exports sessions as a standalone HTML document
type HTMLExporter struct{}

var htmlTemplate = template.Must(template.New("session").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>{{.Title}}</title>
    <style>
      body { font-family: Arial, sans-serif; margin: 20px; }
      .message { margin-bottom: 20px; padding: 10px; border-radius: 5px; }
      .user { background-color: #e3f2fd; text-align: right; }
      .ai { background-color: #f5f5f5; }
      .timestamp { font-size: 12px; color: #666; }
    </style>
  </head>
  <body>
    <h1>{{.Title}}</h1>
{{range .Messages}}    <div class="message {{.Class}}">
      <div class="timestamp">{{.Speaker}} - {{.Timestamp}}</div>
      <div>{{.Content}}</div>
    </div>
{{end}}  </body>
</html>
`))

type htmlMessage struct {
	Class     string
	Speaker   string
	Timestamp string
	Content   string
}

// Export exports a session to HTML format
func (e *HTMLExporter) Export(session *internal.ChatSession, w io.Writer) error {
	messages := make([]htmlMessage, 0, len(session.Messages))
	for _, msg := range session.Messages {
		class := "ai"
		if msg.Role == internal.RoleUser {
			class = "user"
		}
		messages = append(messages, htmlMessage{
			Class:     class,
			Speaker:   speaker(msg.Role),
			Timestamp: msg.CreatedAt.Format("2006-01-02 15:04:05"),
			Content:   msg.Content,
		})
	}

	return htmlTemplate.Execute(w, struct {
		Title    string
		Messages []htmlMessage
	}{
		Title:    session.Title,
		Messages: messages,
	})
}

// Extension returns the file extension for this format
func (e *HTMLExporter) Extension() string {
	return "html"
}
