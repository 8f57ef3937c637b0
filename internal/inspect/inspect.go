// Package inspect dispatches files to format-specific traversals and
// normalizes their structure into a uniform Report.
//
// Each traversal is a thin sequential walk over the object graph exposed by
// a decoding library; this package owns no parsing beyond internal/mat5.
package inspect

import (
	"errors"
	"fmt"
	"os"

	"github.com/fzhao70/dview/internal/format"
)

// ErrUnsupported is returned when a path's extension is not in the format
// table. The caller reports it and moves on to the next file.
var ErrUnsupported = errors.New("unsupported file format")

// ErrMissingFile is returned when a target path does not exist.
var ErrMissingFile = errors.New("file does not exist")

// Traversal walks one container format and produces a Report.
// A traversal error abandons the file's report entirely; no half-built
// report is ever returned.
type Traversal interface {
	Traverse(path string, showAll bool) (*Report, error)
}

// Inspector resolves formats and runs the matching traversal.
type Inspector struct {
	showAll    bool
	traversals map[format.Tag]Traversal
}

// New returns an Inspector with all five traversals registered.
func New(showAll bool) *Inspector {
	return &Inspector{
		showAll: showAll,
		traversals: map[format.Tag]Traversal{
			format.NPY:    npyTraversal{},
			format.NPZ:    npzTraversal{},
			format.NetCDF: netcdfTraversal{},
			format.HDF5:   hdf5Traversal{},
			format.MAT:    matTraversal{},
		},
	}
}

// File inspects a single target. Unstatable paths (absent, permission
// denied, a file used as a directory) and unknown extensions map to the
// sentinel errors; anything else is a decode error from the underlying
// library, wrapped unmodified.
func (ins *Inspector) File(path string) (*Report, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	tr, ok := ins.traversals[format.Resolve(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	return tr.Traverse(path, ins.showAll)
}
