package inspect

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/sbinet/npyio"

	"github.com/fzhao70/dview/internal/format"
)

// npyTraversal reports the single anonymous array of a .npy file.
type npyTraversal struct{}

func (npyTraversal) Traverse(path string, showAll bool) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entry, err := readNpyEntry(f, "", showAll)
	if err != nil {
		return nil, err
	}
	entry.Kind = KindArray

	return &Report{
		File:    path,
		Format:  format.NPY,
		Entries: []Entry{*entry},
	}, nil
}

// readNpyEntry decodes one npy stream into an Entry. It is shared with the
// npz traversal, which runs it once per archive member.
func readNpyEntry(r io.Reader, name string, showAll bool) (*Entry, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return nil, err
	}

	descr := nr.Header.Descr
	shape := make([]int64, len(descr.Shape))
	for i, n := range descr.Shape {
		shape[i] = int64(n)
	}

	entry := &Entry{
		Name:  name,
		Kind:  KindVariable,
		Dtype: dtypeName(descr.Type),
		Shape: shape,
	}
	if !showAll {
		return entry, nil
	}

	rt := npyio.TypeFrom(descr.Type)
	if rt == nil {
		return nil, fmt.Errorf("npy: no Go type for dtype %q", descr.Type)
	}
	ptr := reflect.New(reflect.SliceOf(rt))
	if err := nr.Read(ptr.Interface()); err != nil {
		return nil, err
	}
	entry.Data = &Value{Data: ptr.Elem().Interface(), Shape: shape, ColMajor: descr.Fortran}
	return entry, nil
}

// dtypeName turns a numpy descr string like "<f8" into a Go-flavored type
// name like "float64". Unknown descrs are reported verbatim.
func dtypeName(descr string) string {
	if rt := npyio.TypeFrom(descr); rt != nil {
		return rt.String()
	}
	return descr
}
