package inspect

import (
	"archive/zip"
	"fmt"
	"strings"

	"github.com/fzhao70/dview/internal/format"
)

// npzTraversal reports every member of a .npz archive in the order the
// archive stores them. archive/zip is walked directly rather than through a
// name-keyed helper so the stored member order survives into the report.
type npzTraversal struct{}

func (npzTraversal) Traverse(path string, showAll bool) (*Report, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	report := &Report{File: path, Format: format.NPZ}
	for _, member := range zr.File {
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("npz member %s: %w", member.Name, err)
		}
		entry, err := readNpyEntry(rc, strings.TrimSuffix(member.Name, ".npy"), showAll)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("npz member %s: %w", member.Name, err)
		}
		report.Entries = append(report.Entries, *entry)
	}
	return report, nil
}
