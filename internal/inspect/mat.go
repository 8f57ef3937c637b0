package inspect

import (
	"strings"

	"github.com/fzhao70/dview/internal/format"
	"github.com/fzhao70/dview/internal/mat5"
)

// matTraversal reports the variables of a classic (< v7.3) MATLAB file.
// Reserved dunder-prefixed entries never reach the report.
type matTraversal struct{}

func (matTraversal) Traverse(path string, showAll bool) (*Report, error) {
	f, err := mat5.Open(path)
	if err != nil {
		return nil, err
	}

	report := &Report{File: path, Format: format.MAT}
	if f.Header != "" {
		report.GlobalAttrs = []Attr{{Name: "header", Value: f.Header}}
	}

	for _, v := range f.Variables() {
		if strings.HasPrefix(v.Name, "__") {
			continue
		}
		shape := make([]int64, len(v.Dims))
		for i, d := range v.Dims {
			shape[i] = int64(d)
		}
		entry := Entry{
			Name:  v.Name,
			Kind:  KindVariable,
			Dtype: v.Dtype(),
			Shape: shape,
		}
		if showAll {
			switch v.Class {
			case mat5.ClassCell, mat5.ClassStruct, mat5.ClassObject, mat5.ClassSparse:
				entry.Data = &Value{Data: "<" + v.Dtype() + " payload not shown>"}
			default:
				values, err := v.Values()
				if err != nil {
					return nil, err
				}
				entry.Data = &Value{Data: values, Shape: shape, ColMajor: true}
			}
		}
		report.Entries = append(report.Entries, entry)
	}
	return report, nil
}
