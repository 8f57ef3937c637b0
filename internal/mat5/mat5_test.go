package mat5_test

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fzhao70/dview/internal/mat5"
)

const (
	miINT8       = 1
	miUINT8      = 2
	miINT32      = 5
	miUINT16     = 4
	miUINT32     = 6
	miDOUBLE     = 9
	miMATRIX     = 14
	miCOMPRESSED = 15

	mxCHAR   = 4
	mxSTRUCT = 2
	mxDOUBLE = 6
	mxINT32  = 12
)

// elem encodes one data element with a full tag and 8-byte padding.
func elem(typ uint32, data []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, typ)
	binary.Write(&buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	if pad := (8 - len(data)%8) % 8; pad != 0 {
		buf.Write(make([]byte, pad))
	}
	return buf.Bytes()
}

// smallElem encodes a data element in the packed small form (≤ 4 bytes).
func smallElem(typ uint32, data []byte) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint32(out[0:4], typ|uint32(len(data))<<16)
	copy(out[4:], data)
	return out
}

func le(vals any) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, vals)
	return buf.Bytes()
}

// matrixElem builds a miMATRIX element from its subelements.
func matrixElem(name string, class uint32, extraFlags uint32, dims []int32, payload ...[]byte) []byte {
	var body bytes.Buffer
	body.Write(elem(miUINT32, le([]uint32{class | extraFlags, 0})))
	body.Write(elem(miINT32, le(dims)))
	body.Write(elem(miINT8, []byte(name)))
	for _, p := range payload {
		body.Write(p)
	}
	return elem(miMATRIX, body.Bytes())
}

// level5 wraps elements in a Level 5 file image.
func level5(version uint16, elements ...[]byte) []byte {
	header := make([]byte, 128)
	text := "MATLAB 5.0 MAT-file, Platform: GLNXA64"
	copy(header, text)
	for i := len(text); i < 116; i++ {
		header[i] = ' '
	}
	binary.LittleEndian.PutUint16(header[124:126], version)
	header[126] = 'I'
	header[127] = 'M'

	out := bytes.NewBuffer(header)
	for _, e := range elements {
		out.Write(e)
	}
	return out.Bytes()
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "t.mat")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestInt32Matrix(t *testing.T) {
	file := level5(0x0100,
		matrixElem("a", mxINT32, 0, []int32{2, 2}, elem(miINT32, le([]int32{1, 2, 3, 4}))))

	f, err := mat5.Open(writeFile(t, file))
	require.NoError(t, err)
	require.Len(t, f.Variables(), 1)

	v := f.Variables()[0]
	require.Equal(t, "a", v.Name)
	require.Equal(t, "int32", v.Dtype())
	require.Equal(t, []int32{2, 2}, v.Dims)

	values, err := v.Values()
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3, 4}, values)
}

func TestDoubleStoredAsUint8Promotes(t *testing.T) {
	file := level5(0x0100,
		matrixElem("d", mxDOUBLE, 0, []int32{1, 3}, elem(miUINT8, []byte{5, 6, 7})))

	f, err := mat5.Open(writeFile(t, file))
	require.NoError(t, err)

	values, err := f.Variables()[0].Values()
	require.NoError(t, err)
	require.Equal(t, []float64{5, 6, 7}, values)
}

func TestComplexDouble(t *testing.T) {
	file := level5(0x0100,
		matrixElem("z", mxDOUBLE, 0x0800, []int32{1, 2},
			elem(miDOUBLE, le([]float64{1, 2})),
			elem(miDOUBLE, le([]float64{3, 4}))))

	f, err := mat5.Open(writeFile(t, file))
	require.NoError(t, err)

	v := f.Variables()[0]
	require.True(t, v.Complex)
	values, err := v.Values()
	require.NoError(t, err)
	require.Equal(t, []complex128{complex(1, 3), complex(2, 4)}, values)
}

func TestCharUTF16(t *testing.T) {
	file := level5(0x0100,
		matrixElem("s", mxCHAR, 0, []int32{1, 2}, elem(miUINT16, le([]uint16{'h', 'i'}))))

	f, err := mat5.Open(writeFile(t, file))
	require.NoError(t, err)

	v := f.Variables()[0]
	require.Equal(t, "char", v.Dtype())
	values, err := v.Values()
	require.NoError(t, err)
	require.Equal(t, "hi", values)
}

func TestSmallElementName(t *testing.T) {
	var body bytes.Buffer
	body.Write(elem(miUINT32, le([]uint32{mxINT32, 0})))
	body.Write(elem(miINT32, le([]int32{1, 1})))
	body.Write(smallElem(miINT8, []byte("ab")))
	body.Write(elem(miINT32, le([]int32{9})))
	file := level5(0x0100, elem(miMATRIX, body.Bytes()))

	f, err := mat5.Open(writeFile(t, file))
	require.NoError(t, err)
	require.Equal(t, "ab", f.Variables()[0].Name)
}

func TestCompressedVariableMatchesUncompressed(t *testing.T) {
	matrix := matrixElem("c", mxINT32, 0, []int32{1, 2}, elem(miINT32, le([]int32{8, 9})))

	var deflated bytes.Buffer
	zw := zlib.NewWriter(&deflated)
	_, err := zw.Write(matrix)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var compressed bytes.Buffer
	binary.Write(&compressed, binary.LittleEndian, uint32(miCOMPRESSED))
	binary.Write(&compressed, binary.LittleEndian, uint32(deflated.Len()))
	compressed.Write(deflated.Bytes())

	f, err := mat5.Open(writeFile(t, level5(0x0100, compressed.Bytes())))
	require.NoError(t, err)
	require.Len(t, f.Variables(), 1)

	v := f.Variables()[0]
	require.Equal(t, "c", v.Name)
	values, err := v.Values()
	require.NoError(t, err)
	require.Equal(t, []int32{8, 9}, values)
}

func TestStructReportsShapeWithoutPayload(t *testing.T) {
	// Field metadata after the name is irrelevant to directory decoding.
	file := level5(0x0100, matrixElem("st", mxSTRUCT, 0, []int32{1, 1}))

	f, err := mat5.Open(writeFile(t, file))
	require.NoError(t, err)

	v := f.Variables()[0]
	require.Equal(t, "struct", v.Dtype())
	require.Equal(t, []int32{1, 1}, v.Dims)
	_, err = v.Values()
	require.Error(t, err)
}

func TestLogicalFlag(t *testing.T) {
	file := level5(0x0100,
		matrixElem("mask", mxDOUBLE, 0x0200, []int32{1, 3}, elem(miUINT8, []byte{1, 0, 1})))

	f, err := mat5.Open(writeFile(t, file))
	require.NoError(t, err)

	v := f.Variables()[0]
	require.Equal(t, "bool", v.Dtype())
	values, err := v.Values()
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, true}, values)
}

func TestRejectsV73(t *testing.T) {
	_, err := mat5.Open(writeFile(t, level5(0x0200)))
	require.ErrorIs(t, err, mat5.ErrV73)
}

func TestRejectsLevel4(t *testing.T) {
	raw := make([]byte, 128)
	// A Level 4 file opens with a numeric type flag, all leading zeros here.
	_, err := mat5.Open(writeFile(t, raw))
	require.ErrorIs(t, err, mat5.ErrLevel4)
}

func TestRejectsTruncatedHeader(t *testing.T) {
	_, err := mat5.Open(writeFile(t, []byte("MATLAB 5.0")))
	require.Error(t, err)
}
