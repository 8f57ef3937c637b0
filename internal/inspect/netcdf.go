package inspect

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/fzhao70/dview/internal/format"
)

// netcdfTraversal walks a NetCDF file (classic CDF or HDF5-backed) in two
// passes: dimensions first, then variables, then the global attributes.
type netcdfTraversal struct{}

func (netcdfTraversal) Traverse(path string, showAll bool) (*Report, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer g.Close()

	report := &Report{File: path, Format: format.NetCDF}

	for _, name := range g.ListDimensions() {
		length, _ := g.GetDimension(name)
		report.Dimensions = append(report.Dimensions, Dimension{
			Name:   name,
			Length: length,
			// The record dimension is stored with length 0 in the header.
			Unlimited: length == 0,
		})
	}

	for _, name := range g.ListVariables() {
		vg, err := g.GetVarGetter(name)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		entry := Entry{
			Name:     name,
			Kind:     KindVariable,
			Dtype:    vg.Type(),
			Shape:    vg.Shape(),
			DimNames: vg.Dimensions(),
			Attrs:    attrList(vg.Attributes()),
		}
		if showAll {
			values, err := vg.Values()
			if err != nil {
				return nil, fmt.Errorf("variable %s: %w", name, err)
			}
			entry.Data = &Value{Data: values, Shape: entry.Shape}
		}
		report.Entries = append(report.Entries, entry)
	}

	fillUnlimitedLengths(report)
	report.GlobalAttrs = attrList(g.Attributes())
	return report, nil
}

// fillUnlimitedLengths recovers the current extent of the record dimension
// from the first variable that uses it as its leading dimension.
func fillUnlimitedLengths(report *Report) {
	for i, dim := range report.Dimensions {
		if !dim.Unlimited {
			continue
		}
		for _, entry := range report.Entries {
			if len(entry.DimNames) > 0 && entry.DimNames[0] == dim.Name && len(entry.Shape) > 0 {
				report.Dimensions[i].Length = uint64(entry.Shape[0])
				break
			}
		}
	}
}

// attrList flattens an ordered attribute map into the report's attr slice.
func attrList(attrs api.AttributeMap) []Attr {
	if attrs == nil {
		return nil
	}
	var out []Attr
	for _, key := range attrs.Keys() {
		value, _ := attrs.Get(key)
		out = append(out, Attr{Name: key, Value: value})
	}
	return out
}
