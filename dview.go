// Package dview provides a public API for inspecting scientific array and
// container files (NumPy .npy/.npz, NetCDF, HDF5, classic MATLAB .mat).
//
// This is the library entry point. For the CLI tool, see cmd/dview/.
package dview

import (
	"github.com/fzhao70/dview/internal/format"
	"github.com/fzhao70/dview/internal/inspect"
)

// Re-export core types from internal/inspect so consumers don't need to
// import internal packages.
type (
	Report    = inspect.Report
	Entry     = inspect.Entry
	Dimension = inspect.Dimension
	Attr      = inspect.Attr
	Value     = inspect.Value
	Kind      = inspect.Kind
	FormatTag = format.Tag
)

const (
	KindArray    = inspect.KindArray
	KindVariable = inspect.KindVariable
	KindGroup    = inspect.KindGroup
	KindDataset  = inspect.KindDataset
)

// Sentinel errors for the two skippable target conditions.
var (
	ErrMissingFile = inspect.ErrMissingFile
	ErrUnsupported = inspect.ErrUnsupported
)

// ResolveFormat maps a path's extension to its format tag.
func ResolveFormat(path string) FormatTag {
	return format.Resolve(path)
}

// Inspect resolves the file's format and returns its inspection report.
// Any other error is a decode error from the underlying format library.
func Inspect(path string, opts ...Option) (*Report, error) {
	cfg := applyOpts(opts)
	return inspect.New(cfg.showAll).File(path)
}

func applyOpts(opts []Option) *inspectConfig {
	cfg := &inspectConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}
