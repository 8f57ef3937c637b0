package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fzhao70/dview/internal/format"
	"github.com/fzhao70/dview/internal/inspect"
)

// ANSI color codes
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	cyan  = "\033[36m"
)

const (
	ruleWidth  = 50
	nameWidth  = 20
	typeWidth  = 15
	shapeWidth = 20
)

// TerminalFormatter renders a report as sectioned, human-readable text.
// Entries print in the traversal's natural order.
type TerminalFormatter struct {
	NoColor bool
}

func (f *TerminalFormatter) color(code, text string) string {
	if f.NoColor {
		return text
	}
	return code + text + reset
}

func (f *TerminalFormatter) rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
}

func (f *TerminalFormatter) section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", f.color(cyan, title+":"))
	f.rule(w)
}

func (f *TerminalFormatter) Format(w io.Writer, report *inspect.Report) error {
	fmt.Fprintf(w, "\n%s %s\n", f.color(bold, "File:"), report.File)

	switch report.Format {
	case format.NPY:
		f.formatNpy(w, report)
	case format.NPZ:
		f.formatNpz(w, report)
	case format.NetCDF:
		f.formatNetCDF(w, report)
	case format.HDF5:
		f.formatHDF5(w, report)
	case format.MAT:
		f.formatMat(w, report)
	}
	return nil
}

func (f *TerminalFormatter) formatNpy(w io.Writer, report *inspect.Report) {
	if len(report.Entries) == 0 {
		return
	}
	e := &report.Entries[0]
	fmt.Fprintf(w, "Type: %s\n", e.Dtype)
	fmt.Fprintf(w, "Shape: %s\n", FormatShape(e.Shape))
	fmt.Fprintf(w, "Dimensions: %d\n", e.NDim())
	if e.Data != nil {
		f.section(w, "Data")
		fmt.Fprintln(w, FormatValue(e.Data))
	}
}

func (f *TerminalFormatter) formatNpz(w io.Writer, report *inspect.Report) {
	f.section(w, "Variables")
	fmt.Fprintf(w, "%-*s %-*s %-*s %s\n",
		nameWidth, "Name", typeWidth, "Type", shapeWidth, "Shape", "Dimensions")
	f.rule(w)
	for i := range report.Entries {
		e := &report.Entries[i]
		fmt.Fprintf(w, "%-*s %-*s %-*s %d\n",
			nameWidth, e.Name, typeWidth, e.Dtype, shapeWidth, FormatShape(e.Shape), e.NDim())
	}
	for i := range report.Entries {
		e := &report.Entries[i]
		if e.Data == nil {
			continue
		}
		fmt.Fprintf(w, "\nData for %s:\n", e.Name)
		f.rule(w)
		fmt.Fprintln(w, FormatValue(e.Data))
	}
}

func (f *TerminalFormatter) formatNetCDF(w io.Writer, report *inspect.Report) {
	f.section(w, "Dimensions")
	for _, d := range report.Dimensions {
		if d.Unlimited {
			fmt.Fprintf(w, "%s: %d (unlimited)\n", d.Name, d.Length)
		} else {
			fmt.Fprintf(w, "%s: %d\n", d.Name, d.Length)
		}
	}

	f.section(w, "Variables")
	for i := range report.Entries {
		e := &report.Entries[i]
		fmt.Fprintf(w, "Name: %s\n", e.Name)
		fmt.Fprintf(w, "  Type: %s\n", e.Dtype)
		fmt.Fprintf(w, "  Dimensions: (%s)\n", strings.Join(e.DimNames, ", "))
		fmt.Fprintf(w, "  Shape: %s\n", FormatShape(e.Shape))
		f.printAttrs(w, "  ", e.Attrs)
		fmt.Fprintln(w)
	}
	for i := range report.Entries {
		e := &report.Entries[i]
		if e.Data == nil {
			continue
		}
		fmt.Fprintf(w, "Data for %s:\n", e.Name)
		f.rule(w)
		fmt.Fprintln(w, FormatValue(e.Data))
		fmt.Fprintln(w)
	}

	if len(report.GlobalAttrs) > 0 {
		f.section(w, "Global Attributes")
		for _, a := range report.GlobalAttrs {
			fmt.Fprintf(w, "%s: %v\n", a.Name, a.Value)
		}
	}
}

func (f *TerminalFormatter) formatHDF5(w io.Writer, report *inspect.Report) {
	f.section(w, "File Structure")
	for i := range report.Entries {
		e := &report.Entries[i]
		fmt.Fprintf(w, "\n%s:\n", e.Name)
		switch e.Kind {
		case inspect.KindGroup:
			fmt.Fprintln(w, "  Type: Group")
		case inspect.KindDataset:
			fmt.Fprintln(w, "  Type: Dataset")
			if e.Shape != nil {
				fmt.Fprintf(w, "  Shape: %s\n", FormatShape(e.Shape))
			}
			if e.Dtype != "" {
				fmt.Fprintf(w, "  Dtype: %s\n", e.Dtype)
			}
		}
		f.printAttrs(w, "  ", e.Attrs)
		if e.Data != nil {
			fmt.Fprintln(w, "  Data:")
			f.rule(w)
			fmt.Fprintln(w, FormatValue(e.Data))
		}
	}

	if len(report.GlobalAttrs) > 0 {
		f.section(w, "Global Attributes")
		for _, a := range report.GlobalAttrs {
			fmt.Fprintf(w, "%s: %v\n", a.Name, a.Value)
		}
	}
}

func (f *TerminalFormatter) formatMat(w io.Writer, report *inspect.Report) {
	fmt.Fprintln(w, "Format: MATLAB < v7.3")
	f.section(w, "Variables")
	for i := range report.Entries {
		e := &report.Entries[i]
		fmt.Fprintf(w, "Variable: %s\n", e.Name)
		fmt.Fprintf(w, "  Type: %s\n", e.Dtype)
		fmt.Fprintf(w, "  Shape: %s\n", FormatShape(e.Shape))
		if e.Data != nil {
			fmt.Fprintln(w, "  Data:")
			fmt.Fprintln(w, FormatValue(e.Data))
		}
		fmt.Fprintln(w)
	}
}

// printAttrs writes an attribute block under the given indent. The header
// line always prints so empty attribute sets are visible as such.
func (f *TerminalFormatter) printAttrs(w io.Writer, indent string, attrs []inspect.Attr) {
	fmt.Fprintf(w, "%sAttributes:\n", indent)
	for _, a := range attrs {
		fmt.Fprintf(w, "%s  %s: %v\n", indent, a.Name, a.Value)
	}
}
