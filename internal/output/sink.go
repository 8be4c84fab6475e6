package output

import (
	"fmt"
	"io"
	"os"
	"repostats/internal/report"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Sink renders a finished report.
type Sink interface {
	WriteReport(r report.Report) error
}

// NewSink returns the sink for format. An empty format selects JSON and a
// nil writer selects stdout.
func NewSink(w io.Writer, format string) (Sink, error) {
	if w == nil {
		w = os.Stdout
	}
	switch format {
	case "", FormatJSON:
		return NewJSONSink(w), nil
	case FormatText:
		return NewTextSink(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
