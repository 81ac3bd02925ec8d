package dashboard

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"logview/models"
)

const (
	ExportFilename    = "logs_export.csv"
	ExportContentType = "text/csv;charset=utf-8"
)

// ExportCSV writes one "timestamp,level,message" line per entry. Lines are
// joined by "\n" with no header and no trailing newline. Fields are written
// as-is: a message containing a comma or newline produces a malformed row.
func ExportCSV(w io.Writer, entries []models.LogEntry) error {
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(entry.Timestamp)
		b.WriteByte(',')
		b.WriteString(entry.Level)
		b.WriteByte(',')
		b.WriteString(entry.Message)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "write csv export")
	}
	return nil
}
