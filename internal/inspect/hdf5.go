package inspect

import (
	"fmt"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	nchdf5 "github.com/batchatco/go-native-netcdf/netcdf/hdf5"
	rawhdf5 "github.com/scigolib/hdf5"

	"github.com/fzhao70/dview/internal/format"
)

// hdf5Traversal visits the group/dataset hierarchy depth-first from the
// root, reporting every node under its path-qualified name.
//
// Two readers are wired: the NetCDF4-flavored reader gives structured
// shape/dtype and is tried first; files it rejects fall back to the generic
// walker, which reports a descriptive dataset info string instead.
type hdf5Traversal struct{}

func (hdf5Traversal) Traverse(path string, showAll bool) (*Report, error) {
	g, err := nchdf5.Open(path)
	if err != nil {
		report, fbErr := traverseGenericHDF5(path, showAll)
		if fbErr == nil {
			return report, nil
		}
		return nil, fmt.Errorf("%w (generic reader: %v)", err, fbErr)
	}
	defer g.Close()

	report := &Report{File: path, Format: format.HDF5}
	if err := visitGroup(g, "", showAll, report); err != nil {
		return nil, err
	}
	report.GlobalAttrs = attrList(g.Attributes())
	return report, nil
}

func visitGroup(g api.Group, prefix string, showAll bool, report *Report) error {
	for _, name := range g.ListVariables() {
		vg, err := g.GetVarGetter(name)
		if err != nil {
			return fmt.Errorf("dataset %s%s: %w", prefix, name, err)
		}
		entry := Entry{
			Name:  prefix + name,
			Kind:  KindDataset,
			Dtype: vg.Type(),
			Shape: vg.Shape(),
			Attrs: attrList(vg.Attributes()),
		}
		if showAll {
			values, err := vg.Values()
			if err != nil {
				return fmt.Errorf("dataset %s%s: %w", prefix, name, err)
			}
			entry.Data = &Value{Data: values, Shape: entry.Shape}
		}
		report.Entries = append(report.Entries, entry)
	}

	for _, name := range g.ListSubgroups() {
		sub, err := g.GetGroup(name)
		if err != nil {
			return fmt.Errorf("group %s%s: %w", prefix, name, err)
		}
		report.Entries = append(report.Entries, Entry{
			Name:  prefix + name,
			Kind:  KindGroup,
			Attrs: attrList(sub.Attributes()),
		})
		err = visitGroup(sub, prefix+name+"/", showAll, report)
		sub.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// traverseGenericHDF5 walks plain HDF5 files the NetCDF4 reader cannot
// open. Shape and dtype come back as one descriptive string per dataset.
func traverseGenericHDF5(path string, showAll bool) (*Report, error) {
	f, err := rawhdf5.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	report := &Report{File: path, Format: format.HDF5}
	var walkErr error
	f.Walk(func(objPath string, obj rawhdf5.Object) {
		if walkErr != nil {
			return
		}
		name := strings.Trim(objPath, "/")
		switch o := obj.(type) {
		case *rawhdf5.Group:
			var attrs []Attr
			if raw, err := o.Attributes(); err == nil {
				for _, a := range raw {
					value, verr := a.ReadValue()
					if verr != nil {
						value = fmt.Sprintf("<unreadable: %v>", verr)
					}
					attrs = append(attrs, Attr{Name: a.Name, Value: value})
				}
			}
			if name == "" {
				report.GlobalAttrs = attrs
				return
			}
			report.Entries = append(report.Entries, Entry{
				Name:  name,
				Kind:  KindGroup,
				Attrs: attrs,
			})
		case *rawhdf5.Dataset:
			entry := Entry{Name: name, Kind: KindDataset}
			if info, err := o.Info(); err == nil {
				entry.Dtype = info
			}
			if raw, err := o.Attributes(); err == nil {
				for _, a := range raw {
					value, verr := a.ReadValue()
					if verr != nil {
						value = fmt.Sprintf("<unreadable: %v>", verr)
					}
					entry.Attrs = append(entry.Attrs, Attr{Name: a.Name, Value: value})
				}
			}
			if showAll {
				data, err := readGenericDataset(o)
				if err != nil {
					walkErr = fmt.Errorf("dataset %s: %w", name, err)
					return
				}
				entry.Data = &Value{Data: data}
			}
			report.Entries = append(report.Entries, entry)
		}
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return report, nil
}

// readGenericDataset materializes a dataset through the generic reader,
// trying numeric, string, then compound decoders.
func readGenericDataset(d *rawhdf5.Dataset) (any, error) {
	values, err := d.Read()
	if err == nil {
		return values, nil
	}
	if strs, serr := d.ReadStrings(); serr == nil {
		return strs, nil
	}
	if comp, cerr := d.ReadCompound(); cerr == nil {
		return comp, nil
	}
	return nil, err
}
