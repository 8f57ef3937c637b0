package inspect_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fzhao70/dview/internal/format"
	"github.com/fzhao70/dview/internal/inspect"
)

// writeNpz stores the given members in order, mimicking numpy's savez
// layout of one npy stream per member.
func writeNpz(t *testing.T, path string, names []string, payloads [][]byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for i, name := range names {
		w, err := zw.Create(name + ".npy")
		require.NoError(t, err)
		_, err = w.Write(payloads[i])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestNpzPreservesStoredOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.npz")
	member := int32Grid2x2(t)
	// Deliberately not alphabetical: rendering must follow archive order.
	writeNpz(t, path, []string{"zebra", "alpha", "mid"}, [][]byte{member, member, member})

	report, err := inspect.New(false).File(path)
	require.NoError(t, err)
	require.Equal(t, format.NPZ, report.Format)
	require.Len(t, report.Entries, 3)
	require.Equal(t, "zebra", report.Entries[0].Name)
	require.Equal(t, "alpha", report.Entries[1].Name)
	require.Equal(t, "mid", report.Entries[2].Name)

	for _, e := range report.Entries {
		require.Equal(t, inspect.KindVariable, e.Kind)
		require.Equal(t, "int32", e.Dtype)
		require.Equal(t, []int64{2, 2}, e.Shape)
		require.Equal(t, 2, e.NDim())
		require.Nil(t, e.Data)
	}
}

func TestNpzShowAllMaterializesEveryMember(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.npz")
	member := int32Grid2x2(t)
	writeNpz(t, path, []string{"a", "b"}, [][]byte{member, member})

	report, err := inspect.New(true).File(path)
	require.NoError(t, err)
	require.Len(t, report.Entries, 2)
	for _, e := range report.Entries {
		require.NotNil(t, e.Data)
		require.Equal(t, []int32{1, 2, 3, 4}, e.Data.Data)
	}
}

func TestNpzCorruptMemberFailsWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.npz")
	writeNpz(t, path, []string{"ok", "bad"}, [][]byte{int32Grid2x2(t), []byte("not an npy stream")})

	_, err := inspect.New(false).File(path)
	require.Error(t, err)
}
