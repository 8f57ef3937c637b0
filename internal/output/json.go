package output

import (
	"encoding/json"
	"io"

	"github.com/fzhao70/dview/internal/inspect"
)

// JSONFormatter outputs one indented JSON document per report.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, report *inspect.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
