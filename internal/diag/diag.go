// Package diag prints the operator facing diagnostics of a conversion run: the project's source
// tree before processing and a summary of the written report afterwards.
package diag

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/avatar-generator/covconv/internal/coverage"
	"github.com/avatar-generator/covconv/internal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

// SourceExtensions are the file extensions listed in the source tree and accepted for coverage.
var SourceExtensions = []string{".js", ".ts", ".vue"}

type styles struct {
	header  lipgloss.Style
	dir     lipgloss.Style
	file    lipgloss.Style
	warning lipgloss.Style
	success lipgloss.Style
	muted   lipgloss.Style
}

// newStyles binds the styles to w so that color is only emitted when w is a terminal.
func newStyles(w io.Writer) styles {
	renderer := lipgloss.NewRenderer(w)
	return styles{
		header:  renderer.NewStyle().Bold(true),
		dir:     renderer.NewStyle().Foreground(lipgloss.Color("12")),
		file:    renderer.NewStyle(),
		warning: renderer.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		success: renderer.NewStyle().Foreground(lipgloss.Color("10")),
		muted:   renderer.NewStyle().Faint(true),
	}
}

// ListSourceTree writes the directories and source files below dir, descending at most maxDepth levels.
// A missing dir is reported in the listing rather than as an error.
func ListSourceTree(w io.Writer, dir string, maxDepth int) error {
	s := newStyles(w)
	fmt.Fprintln(w, s.header.Render("🔍 Source files in your project:"))

	info, err := os.Stat(dir)
	if os.IsNotExist(err) || (err == nil && !info.IsDir()) {
		fmt.Fprintln(w, s.warning.Render(fmt.Sprintf("❌ source directory not found at %s", dir)))
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "unable to stat %s", dir)
	}
	return listFilesRecursively(w, s, dir, 0, maxDepth)
}

func listFilesRecursively(w io.Writer, s styles, dir string, depth, maxDepth int) error {
	if depth > maxDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "unable to list %s", dir)
	}

	indent := strings.Repeat("  ", depth)
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			return errors.Wrapf(err, "unable to stat %s", path)
		}

		if info.IsDir() {
			fmt.Fprintf(w, "%s%s\n", indent, s.dir.Render("📁 "+entry.Name()+"/"))
			if err := listFilesRecursively(w, s, path, depth+1, maxDepth); err != nil {
				return err
			}
		} else if util.HasAnySuffix(entry.Name(), SourceExtensions...) {
			fmt.Fprintf(w, "%s%s\n", indent, s.file.Render("📄 "+entry.Name()))
		}
	}
	return nil
}

// PrintSummary writes the outcome of a conversion: the mapped files and how to render the report.
func PrintSummary(w io.Writer, report coverage.Report, outputPath string) {
	s := newStyles(w)

	fmt.Fprintln(w, s.header.Render(fmt.Sprintf("📊 Final coverage data contains %d files", len(report))))
	if len(report) == 0 {
		fmt.Fprintln(w, s.warning.Render("⚠️ WARNING: No files were successfully mapped for coverage!"))
	} else {
		fmt.Fprintln(w, s.success.Render("✅ Files with coverage data:"))
		for _, path := range report.Paths() {
			fmt.Fprintf(w, "   - %s\n", path)
		}
	}

	fmt.Fprintln(w, s.success.Render(fmt.Sprintf("✅ Converted coverage data written to %s", outputPath)))
	fmt.Fprintln(w, s.header.Render("📋 Next steps:"))
	fmt.Fprintln(w, s.muted.Render("1. Run: npx nyc report"))
	fmt.Fprintln(w, s.muted.Render("2. Check the coverage report in the coverage/ directory"))
	fmt.Fprintln(w, s.muted.Render("3. If issues persist, use the debug information above to adjust path mapping"))
}
