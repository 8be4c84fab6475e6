package output

import (
	"encoding/json"
	"io"
	"repostats/internal/report"
)

// JSONSink writes the report as a single indented JSON object with keys in
// lexicographic order, followed by a newline.
type JSONSink struct {
	writer io.Writer
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{writer: w}
}

func (s *JSONSink) WriteReport(r report.Report) error {
	if r == nil {
		r = report.Report{}
	}
	encoder := json.NewEncoder(s.writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(r); err != nil {
		return err
	}
	return flushIfPossible(s.writer)
}
