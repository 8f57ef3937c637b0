package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fzhao70/dview/internal/config"
	"github.com/fzhao70/dview/internal/inspect"
	"github.com/fzhao70/dview/internal/output"
)

var (
	flagAll       bool
	flagFormat    string
	flagOutput    string
	flagNoColor   bool
	flagKeepGoing bool
)

var rootCmd = &cobra.Command{
	Use:   "dview [files...]",
	Short: "Inspect scientific array and container files",
	Long: `Dview prints the structural metadata of NumPy (.npy, .npz), NetCDF
(.nc, .netcdf), HDF5 (.h5, .hdf5), and classic MATLAB (.mat) files: variable
names, dtypes, shapes, dimensions, and attributes, with optional full data.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runInspect,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagAll, "all", "a", false, "Show all data in addition to header information")
	rootCmd.Flags().StringVar(&flagFormat, "format", "terminal", "Output format (terminal, json)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVar(&flagKeepGoing, "keep-going", false, "Continue with remaining files after a decode error")
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("dview {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// display is the resolved rendering configuration for one run.
type display struct {
	format  string
	output  string
	noColor bool
}

// mergeDisplay layers config-file defaults under explicit flags. A flag the
// user set always wins; NO_COLOR in the environment forces color off.
func mergeDisplay(flags display, formatSet, outputSet bool, cfg config.Config, noColorEnv string) display {
	if !formatSet && cfg.Format != "" {
		flags.format = cfg.Format
	}
	if !outputSet && cfg.Output != "" {
		flags.output = cfg.Output
	}
	if cfg.NoColor || noColorEnv != "" {
		flags.noColor = true
	}
	return flags
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	d := mergeDisplay(
		display{format: flagFormat, output: flagOutput, noColor: flagNoColor},
		cmd.Flags().Changed("format"), cmd.Flags().Changed("output"),
		cfg, os.Getenv("NO_COLOR"))

	var formatter output.Formatter
	switch strings.ToLower(d.format) {
	case "json":
		formatter = &output.JSONFormatter{}
	default:
		formatter = &output.TerminalFormatter{NoColor: d.noColor}
	}

	w := io.Writer(os.Stdout)
	if d.output != "" {
		f, err := os.Create(d.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if failed := runBatch(args, flagAll, flagKeepGoing, formatter, w, os.Stderr); failed {
		if f, ok := w.(*os.File); ok && f != os.Stdout {
			_ = f.Close()
		}
		os.Exit(1)
	}
	return nil
}

// runBatch inspects each target in order, one file fully rendered before
// the next is opened. Missing and unsupported targets are skipped with a
// diagnostic line; a decode error stops the batch unless keepGoing is set.
// It reports whether any decode error occurred.
func runBatch(paths []string, showAll, keepGoing bool, formatter output.Formatter, w, errw io.Writer) bool {
	ins := inspect.New(showAll)
	failed := false
	for _, path := range paths {
		report, err := ins.File(path)
		if err != nil {
			switch {
			case errors.Is(err, inspect.ErrMissingFile):
				fmt.Fprintf(errw, "Error: File %s does not exist\n", path)
				continue
			case errors.Is(err, inspect.ErrUnsupported):
				fmt.Fprintf(errw, "Error: Unsupported file format for %s\n", path)
				continue
			}
			fmt.Fprintf(errw, "Error reading %s: %v\n", path, err)
			failed = true
			if !keepGoing {
				return true
			}
			continue
		}
		if err := formatter.Format(w, report); err != nil {
			fmt.Fprintf(errw, "Error writing report for %s: %v\n", path, err)
			failed = true
		}
	}
	return failed
}
