// Package format resolves file paths to one of the supported container
// format tags by extension.
package format

import (
	"path/filepath"
	"strings"
)

// Tag identifies a supported container format.
type Tag string

const (
	NPY         Tag = "npy"
	NPZ         Tag = "npz"
	NetCDF      Tag = "netcdf"
	HDF5        Tag = "hdf5"
	MAT         Tag = "mat"
	Unsupported Tag = "unsupported"
)

var byExt = map[string]Tag{
	".npy":    NPY,
	".npz":    NPZ,
	".nc":     NetCDF,
	".netcdf": NetCDF,
	".h5":     HDF5,
	".hdf5":   HDF5,
	".mat":    MAT,
}

// Resolve maps a path's extension to a format tag. The extension match is
// case-insensitive; anything outside the table is Unsupported.
func Resolve(path string) Tag {
	if tag, ok := byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return tag
	}
	return Unsupported
}
