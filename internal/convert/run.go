package convert

import (
	"io"
	"os"
	"path/filepath"

	"github.com/avatar-generator/covconv/internal/coverage"
	"github.com/avatar-generator/covconv/internal/diag"
	"github.com/pkg/errors"
)

// RunOptions configure a complete conversion run.
type RunOptions struct {
	Options

	// InputPath is the browser coverage location, a path relative to ProjectRoot, an absolute path or
	// an http(s) URL.
	InputPath string
	// OutputPath is the report path, relative to ProjectRoot or absolute.
	OutputPath string
	// ListDepth bounds the diagnostic source tree listing.
	ListDepth int
	// Out receives the diagnostic listing and summary.
	Out io.Writer
}

// Run converts the coverage at opts.InputPath and writes the report to opts.OutputPath.
// Missing input is logged and ends the run without output and without error.
func Run(opts RunOptions) error {
	logger.Info("starting coverage conversion")
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	input := opts.InputPath
	if !coverage.IsRemote(input) {
		input = anchor(opts.ProjectRoot, input)
		if _, err := os.Stat(input); os.IsNotExist(err) {
			logger.Errorf("coverage file not found at: %s", input)
			return nil
		}
	}
	logger.Infof("found coverage data at: %s", input)

	entries, err := coverage.RetrieveEntries(input)
	if errors.Is(err, coverage.ErrNotFound) {
		logger.Errorf("coverage data not found at: %s", input)
		return nil
	}
	if err != nil {
		return err
	}
	logger.Infof("found %d coverage entries", len(entries))

	sourceDir := filepath.Join(opts.ProjectRoot, opts.SourceDir)
	logger.Infof("project root: %s", opts.ProjectRoot)
	logger.Infof("source directory: %s", sourceDir)
	if err := diag.ListSourceTree(out, sourceDir, opts.ListDepth); err != nil {
		logger.Errorf("error listing source files: %s", err)
	}

	report := NewConverter(opts.Options).Convert(entries)

	output := anchor(opts.ProjectRoot, opts.OutputPath)
	if err := report.WriteFile(output); err != nil {
		return err
	}
	diag.PrintSummary(out, report, output)
	return nil
}

func anchor(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
