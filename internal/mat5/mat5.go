// Package mat5 reads classic MATLAB Level 5 container files (.mat saved as
// v6 or v7). It decodes the variable directory — names, classes, dimensions
// — up front and materializes payloads on demand.
//
// Level 4 files and v7.3 files (HDF5-based) are rejected at the header
// gate. Sparse, cell, and struct variables are listed with class and shape
// but their payloads are not materialized.
package mat5

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf16"
)

// MAT-file data types (tag field).
const (
	miINT8       = 1
	miUINT8      = 2
	miINT16      = 3
	miUINT16     = 4
	miINT32      = 5
	miUINT32     = 6
	miSINGLE     = 7
	miDOUBLE     = 9
	miINT64      = 12
	miUINT64     = 13
	miMATRIX     = 14
	miCOMPRESSED = 15
	miUTF8       = 16
	miUTF16      = 17
	miUTF32      = 18
)

// MATLAB array classes (array flags subelement).
const (
	mxCELL   = 1
	mxSTRUCT = 2
	mxOBJECT = 3
	mxCHAR   = 4
	mxSPARSE = 5
	mxDOUBLE = 6
	mxSINGLE = 7
	mxINT8   = 8
	mxUINT8  = 9
	mxINT16  = 10
	mxUINT16 = 11
	mxINT32  = 12
	mxUINT32 = 13
	mxINT64  = 14
	mxUINT64 = 15
)

// Class codes callers need to recognize opaque payloads.
const (
	ClassCell   = mxCELL
	ClassStruct = mxSTRUCT
	ClassObject = mxOBJECT
	ClassSparse = mxSPARSE
)

var (
	ErrLevel4 = errors.New("mat5: Level 4 .mat files are not supported")
	ErrV73    = errors.New("mat5: v7.3 (HDF5-based) .mat files are not supported")
)

// classNames maps array classes to the dtype strings reported upstream.
var classNames = map[uint32]string{
	mxCELL:   "cell",
	mxSTRUCT: "struct",
	mxOBJECT: "object",
	mxCHAR:   "char",
	mxSPARSE: "sparse",
	mxDOUBLE: "float64",
	mxSINGLE: "float32",
	mxINT8:   "int8",
	mxUINT8:  "uint8",
	mxINT16:  "int16",
	mxUINT16: "uint16",
	mxINT32:  "int32",
	mxUINT32: "uint32",
	mxINT64:  "int64",
	mxUINT64: "uint64",
}

// Variable is one entry of the file's variable directory. The payload stays
// undecoded until Values is called.
type Variable struct {
	Name    string
	Class   uint32
	Dims    []int32
	Complex bool
	Logical bool
	Global  bool

	order binary.ByteOrder
	real  *element
	imag  *element
	char  *element
}

// Dtype returns the variable's type as reported in inspection output.
func (v *Variable) Dtype() string {
	if v.Logical {
		return "bool"
	}
	if name, ok := classNames[v.Class]; ok {
		return name
	}
	return fmt.Sprintf("class(%d)", v.Class)
}

// File is an open Level 5 container.
type File struct {
	Header string // the 116-byte descriptive text, trimmed
	vars   []*Variable
}

// Variables returns the variables in file order.
func (f *File) Variables() []*Variable {
	return f.vars
}

// Open reads the whole variable directory of a classic .mat file.
func Open(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < 128 {
		return nil, errors.New("mat5: file too short for a Level 5 header")
	}

	// Level 4 files start with a numeric type flag; a Level 5 header is
	// descriptive text and never contains NUL in its first four bytes.
	if raw[0] == 0 || raw[1] == 0 || raw[2] == 0 || raw[3] == 0 {
		return nil, ErrLevel4
	}

	order, version, err := headerOrder(raw[124:128])
	if err != nil {
		return nil, err
	}
	if version == 0x0200 {
		return nil, ErrV73
	}
	if version != 0x0100 {
		return nil, fmt.Errorf("mat5: unknown container version 0x%04x", version)
	}

	f := &File{Header: headerText(raw[:116])}
	r := bytes.NewReader(raw[128:])
	for {
		el, err := readElement(r, order)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := f.addElement(el, order); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// headerOrder decodes the version and endian indicator fields. The endian
// field holds "MI" written in the file's native order.
func headerOrder(tail []byte) (binary.ByteOrder, uint16, error) {
	switch {
	case tail[2] == 'I' && tail[3] == 'M':
		le := binary.LittleEndian
		return le, le.Uint16(tail[0:2]), nil
	case tail[2] == 'M' && tail[3] == 'I':
		be := binary.BigEndian
		return be, be.Uint16(tail[0:2]), nil
	}
	return nil, 0, errors.New("mat5: bad endian indicator in header")
}

func headerText(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimRight(b, " "))
}

func (f *File) addElement(el *element, order binary.ByteOrder) error {
	switch el.typ {
	case miCOMPRESSED:
		zr, err := zlib.NewReader(bytes.NewReader(el.data))
		if err != nil {
			return fmt.Errorf("mat5: compressed element: %w", err)
		}
		defer zr.Close()
		inflated, err := io.ReadAll(zr)
		if err != nil {
			return fmt.Errorf("mat5: compressed element: %w", err)
		}
		inner, err := readElement(bytes.NewReader(inflated), order)
		if err != nil {
			return fmt.Errorf("mat5: compressed element: %w", err)
		}
		return f.addElement(inner, order)
	case miMATRIX:
		v, err := parseMatrix(el.data, order)
		if err != nil {
			return err
		}
		f.vars = append(f.vars, v)
		return nil
	default:
		// Elements other than matrices at top level (padding, subsystem
		// data) are skipped.
		return nil
	}
}

// element is one tagged data element.
type element struct {
	typ  uint32
	data []byte
}

// readElement reads one element, handling the packed small-element form
// where the byte count rides in the tag's upper half.
func readElement(r io.Reader, order binary.ByteOrder) (*element, error) {
	var tag [8]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}

	typ := order.Uint32(tag[0:4])
	if small := typ >> 16; small != 0 {
		if small > 4 {
			return nil, fmt.Errorf("mat5: small element claims %d bytes", small)
		}
		data := make([]byte, small)
		copy(data, tag[4:4+small])
		return &element{typ: typ & 0xffff, data: data}, nil
	}

	nbytes := order.Uint32(tag[4:8])
	data := make([]byte, nbytes)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("mat5: truncated element (type %d, %d bytes): %w", typ, nbytes, err)
	}
	if pad := (8 - nbytes%8) % 8; pad != 0 && typ != miCOMPRESSED {
		if _, err := io.CopyN(io.Discard, r, int64(pad)); err != nil && err != io.EOF {
			return nil, err
		}
	}
	return &element{typ: typ, data: data}, nil
}

// parseMatrix decodes the subelements of a miMATRIX element.
func parseMatrix(data []byte, order binary.ByteOrder) (*Variable, error) {
	r := bytes.NewReader(data)

	flagsEl, err := readElement(r, order)
	if err != nil {
		return nil, fmt.Errorf("mat5: array flags: %w", err)
	}
	if len(flagsEl.data) < 8 {
		return nil, errors.New("mat5: short array flags subelement")
	}
	flags := order.Uint32(flagsEl.data[0:4])

	v := &Variable{
		Class:   flags & 0xff,
		Logical: flags&0x0200 != 0,
		Global:  flags&0x0400 != 0,
		Complex: flags&0x0800 != 0,
		order:   order,
	}

	dimsEl, err := readElement(r, order)
	if err != nil {
		return nil, fmt.Errorf("mat5: dimensions: %w", err)
	}
	v.Dims = make([]int32, len(dimsEl.data)/4)
	for i := range v.Dims {
		v.Dims[i] = int32(order.Uint32(dimsEl.data[i*4 : i*4+4]))
	}

	nameEl, err := readElement(r, order)
	if err != nil {
		return nil, fmt.Errorf("mat5: array name: %w", err)
	}
	v.Name = string(nameEl.data)

	switch v.Class {
	case mxCHAR:
		charEl, err := readElement(r, order)
		if err != nil {
			return nil, fmt.Errorf("mat5: char data for %q: %w", v.Name, err)
		}
		v.char = charEl
	case mxCELL, mxSTRUCT, mxOBJECT, mxSPARSE:
		// Directory information only; payload stays opaque.
	default:
		realEl, err := readElement(r, order)
		if err != nil {
			return nil, fmt.Errorf("mat5: data for %q: %w", v.Name, err)
		}
		v.real = realEl
		if v.Complex {
			imagEl, err := readElement(r, order)
			if err != nil {
				return nil, fmt.Errorf("mat5: imaginary data for %q: %w", v.Name, err)
			}
			v.imag = imagEl
		}
	}
	return v, nil
}

// Values materializes the variable's payload. Numeric and logical data come
// back as a flat slice of the class's natural type in column-major (file)
// order; char data comes back as a string.
func (v *Variable) Values() (any, error) {
	switch v.Class {
	case mxCHAR:
		return v.charValues()
	case mxCELL, mxSTRUCT, mxOBJECT, mxSPARSE:
		return nil, fmt.Errorf("mat5: %s payloads are not materialized", v.Dtype())
	}

	real, err := decodeNumeric(v.real, v.order)
	if err != nil {
		return nil, fmt.Errorf("mat5: %q: %w", v.Name, err)
	}
	if !v.Complex {
		return promote(real, v.Class, v.Logical), nil
	}

	imag, err := decodeNumeric(v.imag, v.order)
	if err != nil {
		return nil, fmt.Errorf("mat5: %q: %w", v.Name, err)
	}
	re := toFloat64(real)
	im := toFloat64(imag)
	if len(re) != len(im) {
		return nil, fmt.Errorf("mat5: %q: real/imaginary length mismatch", v.Name)
	}
	out := make([]complex128, len(re))
	for i := range out {
		out[i] = complex(re[i], im[i])
	}
	return out, nil
}

func (v *Variable) charValues() (string, error) {
	if v.char == nil {
		return "", nil
	}
	switch v.char.typ {
	case miUTF8, miINT8, miUINT8:
		return string(v.char.data), nil
	case miUTF16, miUINT16, miINT16:
		units := make([]uint16, len(v.char.data)/2)
		for i := range units {
			units[i] = v.order.Uint16(v.char.data[i*2 : i*2+2])
		}
		return string(utf16.Decode(units)), nil
	}
	return "", fmt.Errorf("mat5: char data stored as type %d", v.char.typ)
}

// decodeNumeric turns a data subelement into a typed slice of its stored
// type. MATLAB stores values in the smallest type that holds them, which
// may be narrower than the array class.
func decodeNumeric(el *element, order binary.ByteOrder) (any, error) {
	if el == nil {
		return nil, errors.New("missing data subelement")
	}
	b := el.data
	switch el.typ {
	case miINT8:
		out := make([]int8, len(b))
		for i := range out {
			out[i] = int8(b[i])
		}
		return out, nil
	case miUINT8:
		out := make([]uint8, len(b))
		copy(out, b)
		return out, nil
	case miINT16:
		out := make([]int16, len(b)/2)
		for i := range out {
			out[i] = int16(order.Uint16(b[i*2 : i*2+2]))
		}
		return out, nil
	case miUINT16:
		out := make([]uint16, len(b)/2)
		for i := range out {
			out[i] = order.Uint16(b[i*2 : i*2+2])
		}
		return out, nil
	case miINT32:
		out := make([]int32, len(b)/4)
		for i := range out {
			out[i] = int32(order.Uint32(b[i*4 : i*4+4]))
		}
		return out, nil
	case miUINT32:
		out := make([]uint32, len(b)/4)
		for i := range out {
			out[i] = order.Uint32(b[i*4 : i*4+4])
		}
		return out, nil
	case miINT64:
		out := make([]int64, len(b)/8)
		for i := range out {
			out[i] = int64(order.Uint64(b[i*8 : i*8+8]))
		}
		return out, nil
	case miUINT64:
		out := make([]uint64, len(b)/8)
		for i := range out {
			out[i] = order.Uint64(b[i*8 : i*8+8])
		}
		return out, nil
	case miSINGLE:
		out := make([]float32, len(b)/4)
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(b[i*4 : i*4+4]))
		}
		return out, nil
	case miDOUBLE:
		out := make([]float64, len(b)/8)
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(b[i*8 : i*8+8]))
		}
		return out, nil
	}
	return nil, fmt.Errorf("numeric data stored as type %d", el.typ)
}

// promote widens a stored slice to the array class's natural type, so a
// double array stored as uint8 still reports float64 values.
func promote(stored any, class uint32, logical bool) any {
	if logical {
		f := toFloat64(stored)
		out := make([]bool, len(f))
		for i := range out {
			out[i] = f[i] != 0
		}
		return out
	}
	switch class {
	case mxDOUBLE:
		if s, ok := stored.([]float64); ok {
			return s
		}
		return toFloat64(stored)
	case mxSINGLE:
		if s, ok := stored.([]float32); ok {
			return s
		}
		f := toFloat64(stored)
		out := make([]float32, len(f))
		for i := range out {
			out[i] = float32(f[i])
		}
		return out
	case mxINT8, mxINT16, mxINT32, mxINT64:
		return promoteSigned(stored, class)
	case mxUINT8, mxUINT16, mxUINT32, mxUINT64:
		return promoteUnsigned(stored, class)
	}
	return stored
}

func promoteSigned(stored any, class uint32) any {
	f := toFloat64(stored)
	switch class {
	case mxINT8:
		if s, ok := stored.([]int8); ok {
			return s
		}
		out := make([]int8, len(f))
		for i := range out {
			out[i] = int8(f[i])
		}
		return out
	case mxINT16:
		if s, ok := stored.([]int16); ok {
			return s
		}
		out := make([]int16, len(f))
		for i := range out {
			out[i] = int16(f[i])
		}
		return out
	case mxINT32:
		if s, ok := stored.([]int32); ok {
			return s
		}
		out := make([]int32, len(f))
		for i := range out {
			out[i] = int32(f[i])
		}
		return out
	default:
		if s, ok := stored.([]int64); ok {
			return s
		}
		out := make([]int64, len(f))
		for i := range out {
			out[i] = int64(f[i])
		}
		return out
	}
}

func promoteUnsigned(stored any, class uint32) any {
	f := toFloat64(stored)
	switch class {
	case mxUINT8:
		if s, ok := stored.([]uint8); ok {
			return s
		}
		out := make([]uint8, len(f))
		for i := range out {
			out[i] = uint8(f[i])
		}
		return out
	case mxUINT16:
		if s, ok := stored.([]uint16); ok {
			return s
		}
		out := make([]uint16, len(f))
		for i := range out {
			out[i] = uint16(f[i])
		}
		return out
	case mxUINT32:
		if s, ok := stored.([]uint32); ok {
			return s
		}
		out := make([]uint32, len(f))
		for i := range out {
			out[i] = uint32(f[i])
		}
		return out
	default:
		if s, ok := stored.([]uint64); ok {
			return s
		}
		out := make([]uint64, len(f))
		for i := range out {
			out[i] = uint64(f[i])
		}
		return out
	}
}

func toFloat64(stored any) []float64 {
	switch s := stored.(type) {
	case []float64:
		return s
	case []float32:
		out := make([]float64, len(s))
		for i, x := range s {
			out[i] = float64(x)
		}
		return out
	case []int8:
		out := make([]float64, len(s))
		for i, x := range s {
			out[i] = float64(x)
		}
		return out
	case []uint8:
		out := make([]float64, len(s))
		for i, x := range s {
			out[i] = float64(x)
		}
		return out
	case []int16:
		out := make([]float64, len(s))
		for i, x := range s {
			out[i] = float64(x)
		}
		return out
	case []uint16:
		out := make([]float64, len(s))
		for i, x := range s {
			out[i] = float64(x)
		}
		return out
	case []int32:
		out := make([]float64, len(s))
		for i, x := range s {
			out[i] = float64(x)
		}
		return out
	case []uint32:
		out := make([]float64, len(s))
		for i, x := range s {
			out[i] = float64(x)
		}
		return out
	case []int64:
		out := make([]float64, len(s))
		for i, x := range s {
			out[i] = float64(x)
		}
		return out
	case []uint64:
		out := make([]float64, len(s))
		for i, x := range s {
			out[i] = float64(x)
		}
		return out
	}
	return nil
}
