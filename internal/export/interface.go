package export

import (
	"fmt"
	"io"

	"github.com/khudka/khudka/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(session *internal.ChatSession, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "txt", "text":
		return &TextExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "csv":
		return &CSVExporter{}, nil
	case "html":
		return &HTMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: txt, json, csv, html, md, yaml)", format)
	}
}

// speaker returns the display label for a message role.
func speaker(role string) string {
	if role == internal.RoleUser {
		return "You"
	}
	return "AI"
}
