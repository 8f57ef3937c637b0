// Package output renders inspection reports as terminal text or JSON.
package output

import (
	"io"

	"github.com/fzhao70/dview/internal/inspect"
)

// Formatter is the interface for rendering inspection reports.
type Formatter interface {
	Format(w io.Writer, report *inspect.Report) error
}
