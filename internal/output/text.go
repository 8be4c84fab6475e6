package output

import (
	"encoding/json"
	"fmt"
	"io"
	"repostats/internal/report"
	"strings"

	"github.com/fatih/color"
)

// TextSink writes one aligned "key: value" line per report field.
type TextSink struct {
	writer io.Writer
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{writer: w}
}

func (s *TextSink) WriteReport(r report.Report) error {
	keys := r.Keys()
	width := 0
	for _, k := range keys {
		if len(k) > width {
			width = len(k)
		}
	}

	bold := color.New(color.Bold)
	for _, k := range keys {
		if _, err := bold.Fprintf(s.writer, "%s:", k); err != nil {
			return err
		}
		pad := strings.Repeat(" ", width-len(k)+1)
		if _, err := fmt.Fprintf(s.writer, "%s%s\n", pad, formatValue(r[k])); err != nil {
			return err
		}
	}
	return flushIfPossible(s.writer)
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool, int, int64, float64:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
