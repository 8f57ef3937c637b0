package output

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fzhao70/dview/internal/inspect"
)

// FormatShape renders a shape as a python-style tuple: "(3, 4)", "(10,)",
// "()" for scalars.
func FormatShape(shape []int64) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d,)", shape[0])
	}
	parts := make([]string, len(shape))
	for i, n := range shape {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FormatValue renders a materialized payload. Flat slices whose length
// matches the shape's element count are nested numpy-style; anything else
// (nested slices from the NetCDF reader, strings, scalars) prints via fmt.
func FormatValue(v *inspect.Value) string {
	if v == nil || v.Data == nil {
		return ""
	}
	if s, ok := v.Data.(string); ok {
		return s
	}
	rv := reflect.ValueOf(v.Data)
	if rv.Kind() != reflect.Slice {
		return fmt.Sprint(v.Data)
	}
	total := int64(1)
	for _, n := range v.Shape {
		total *= n
	}
	if len(v.Shape) > 1 && int64(rv.Len()) == total {
		var sb strings.Builder
		writeNested(&sb, rv, v.Shape, strides(v.Shape, v.ColMajor), 0, 0, 1)
		return sb.String()
	}
	return fmt.Sprint(v.Data)
}

// strides computes the flat-index stride of each dimension for row-major
// (C) or column-major (Fortran/MATLAB) storage.
func strides(shape []int64, colMajor bool) []int64 {
	out := make([]int64, len(shape))
	if colMajor {
		acc := int64(1)
		for i := 0; i < len(shape); i++ {
			out[i] = acc
			acc *= shape[i]
		}
		return out
	}
	acc := int64(1)
	for i := len(shape) - 1; i >= 0; i-- {
		out[i] = acc
		acc *= shape[i]
	}
	return out
}

func writeNested(sb *strings.Builder, rv reflect.Value, shape, stride []int64, dim int, offset int64, indent int) {
	if dim == len(shape)-1 {
		sb.WriteByte('[')
		for j := int64(0); j < shape[dim]; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprint(sb, rv.Index(int(offset+j*stride[dim])).Interface())
		}
		sb.WriteByte(']')
		return
	}
	sb.WriteByte('[')
	for i := int64(0); i < shape[dim]; i++ {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat(" ", indent))
		}
		writeNested(sb, rv, shape, stride, dim+1, offset+i*stride[dim], indent+1)
	}
	sb.WriteByte(']')
}
