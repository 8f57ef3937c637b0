package inspect_test

import (
	"path/filepath"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"
	"github.com/stretchr/testify/require"

	"github.com/fzhao70/dview/internal/format"
	"github.com/fzhao70/dview/internal/inspect"
)

// writeNetCDF creates a classic CDF file with one attributed variable and
// one global attribute, using the same library the traversal reads with.
func writeNetCDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "t.nc")

	cw, err := cdf.OpenWriter(path)
	require.NoError(t, err)

	attrs, err := util.NewOrderedMap([]string{"units"}, map[string]interface{}{"units": "K"})
	require.NoError(t, err)
	require.NoError(t, cw.AddVar("temp", api.Variable{
		Values:     []float32{1, 2, 3},
		Dimensions: []string{"n"},
		Attributes: attrs,
	}))

	global, err := util.NewOrderedMap([]string{"title"}, map[string]interface{}{"title": "synthetic"})
	require.NoError(t, err)
	require.NoError(t, cw.AddAttributes(global))
	require.NoError(t, cw.Close())
	return path
}

func TestNetCDFHeader(t *testing.T) {
	path := writeNetCDF(t)

	report, err := inspect.New(false).File(path)
	require.NoError(t, err)
	require.Equal(t, format.NetCDF, report.Format)

	require.Len(t, report.Dimensions, 1)
	require.Equal(t, "n", report.Dimensions[0].Name)
	require.Equal(t, uint64(3), report.Dimensions[0].Length)
	require.False(t, report.Dimensions[0].Unlimited)

	require.Len(t, report.Entries, 1)
	e := report.Entries[0]
	require.Equal(t, "temp", e.Name)
	require.Equal(t, inspect.KindVariable, e.Kind)
	require.NotEmpty(t, e.Dtype)
	require.Equal(t, []string{"n"}, e.DimNames)
	require.Equal(t, []int64{3}, e.Shape)
	require.Equal(t, []inspect.Attr{{Name: "units", Value: "K"}}, e.Attrs)
	require.Nil(t, e.Data)

	require.Contains(t, report.GlobalAttrs, inspect.Attr{Name: "title", Value: "synthetic"})
}

func TestNetCDFShowAllPayload(t *testing.T) {
	path := writeNetCDF(t)

	report, err := inspect.New(true).File(path)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	require.NotNil(t, report.Entries[0].Data)
	require.Equal(t, []float32{1, 2, 3}, report.Entries[0].Data.Data)
}
