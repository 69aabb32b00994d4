package export

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/khudka/khudka/internal"
)

// CSVExporter exports sessions as CSV, one row per message
type CSVExporter struct{}

// Export exports a session to CSV format
func (e *CSVExporter) Export(session *internal.ChatSession, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Speaker", "Message", "Timestamp"}); err != nil {
		return err
	}

	for _, msg := range session.Messages {
		row := []string{
			speaker(msg.Role),
			msg.Content,
			msg.CreatedAt.Format(time.RFC1123),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Extension returns the file extension for this format
func (e *CSVExporter) Extension() string {
	return "csv"
}
