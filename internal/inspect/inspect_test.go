package inspect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fzhao70/dview/internal/inspect"
)

func TestFileMissing(t *testing.T) {
	_, err := inspect.New(false).File(filepath.Join(t.TempDir(), "gone.npy"))
	require.ErrorIs(t, err, inspect.ErrMissingFile)
}

func TestFileUnstatablePathTreatedAsMissing(t *testing.T) {
	// A regular file as a path component makes os.Stat fail with ENOTDIR,
	// which is not IsNotExist; it must still skip like a missing target.
	base := filepath.Join(t.TempDir(), "plain.npy")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0644))

	_, err := inspect.New(false).File(filepath.Join(base, "child.npy"))
	require.ErrorIs(t, err, inspect.ErrMissingFile)
}

func TestFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := inspect.New(false).File(path)
	require.ErrorIs(t, err, inspect.ErrUnsupported)
}

func TestFileDecodeErrorIsNotASentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.npy")
	require.NoError(t, os.WriteFile(path, []byte("not an npy stream"), 0644))

	_, err := inspect.New(false).File(path)
	require.Error(t, err)
	require.NotErrorIs(t, err, inspect.ErrMissingFile)
	require.NotErrorIs(t, err, inspect.ErrUnsupported)
}
