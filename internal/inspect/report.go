package inspect

import "github.com/fzhao70/dview/internal/format"

// Kind classifies an entry within a report.
type Kind string

const (
	KindArray    Kind = "array"    // the single anonymous npy array
	KindVariable Kind = "variable" // npz/netcdf/mat named variable
	KindGroup    Kind = "group"    // hdf5 group node
	KindDataset  Kind = "dataset"  // hdf5 dataset node
)

// Attr is one metadata key/value attached to a file, group, variable or
// dataset. Attrs are kept as an ordered slice, not a map: rendering must
// follow the decoder's delivery order.
type Attr struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Dimension describes one NetCDF dimension.
type Dimension struct {
	Name      string `json:"name"`
	Length    uint64 `json:"length"`
	Unlimited bool   `json:"unlimited,omitempty"`
}

// Value holds a materialized payload. Data is either a nested Go slice as
// delivered by the decoder, or a flat slice to be shaped with Shape.
// ColMajor marks flat data stored in column-major order (MATLAB files,
// Fortran-order npy arrays).
type Value struct {
	Data     any     `json:"data"`
	Shape    []int64 `json:"shape,omitempty"`
	ColMajor bool    `json:"col_major,omitempty"`
}

// Entry describes one named entity found in a container file.
type Entry struct {
	Name     string   `json:"name"`
	Kind     Kind     `json:"kind"`
	Dtype    string   `json:"dtype,omitempty"`
	Shape    []int64  `json:"shape"`
	DimNames []string `json:"dimensions,omitempty"`
	Attrs    []Attr   `json:"attributes,omitempty"`
	Data     *Value   `json:"payload,omitempty"`
}

// NDim returns the entry's dimension count.
func (e *Entry) NDim() int {
	return len(e.Shape)
}

// Report is the uniform inspection result for one file. Entries appear in
// the traversal's natural iteration order; no sorting is applied.
type Report struct {
	File        string      `json:"file"`
	Format      format.Tag  `json:"format"`
	Dimensions  []Dimension `json:"dimensions,omitempty"`
	Entries     []Entry     `json:"entries"`
	GlobalAttrs []Attr      `json:"global_attributes,omitempty"`
}
