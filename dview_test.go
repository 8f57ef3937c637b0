package dview_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/fzhao70/dview"
)

func writeNpy(t *testing.T, m *mat.Dense) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "x.npy")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, npyio.Write(f, m))
	require.NoError(t, f.Close())
	return path
}

func TestResolveFormat(t *testing.T) {
	require.Equal(t, dview.FormatTag("npy"), dview.ResolveFormat("a.npy"))
	require.Equal(t, dview.FormatTag("hdf5"), dview.ResolveFormat("b.H5"))
}

func TestInspectHeaderOnly(t *testing.T) {
	path := writeNpy(t, mat.NewDense(3, 4, nil))

	report, err := dview.Inspect(path)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	require.Equal(t, dview.KindArray, report.Entries[0].Kind)
	require.Equal(t, []int64{3, 4}, report.Entries[0].Shape)
	require.Nil(t, report.Entries[0].Data)
}

func TestInspectWithData(t *testing.T) {
	path := writeNpy(t, mat.NewDense(2, 2, []float64{1, 7, 7, 4}))

	report, err := dview.Inspect(path, dview.WithData())
	require.NoError(t, err)
	require.NotNil(t, report.Entries[0].Data)
	require.Equal(t, []float64{1, 7, 7, 4}, report.Entries[0].Data.Data)
}

func TestInspectSentinels(t *testing.T) {
	_, err := dview.Inspect(filepath.Join(t.TempDir(), "gone.npy"))
	require.ErrorIs(t, err, dview.ErrMissingFile)

	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("text"), 0644))
	_, err = dview.Inspect(txt)
	require.ErrorIs(t, err, dview.ErrUnsupported)
}
