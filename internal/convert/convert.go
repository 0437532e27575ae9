// Package convert turns browser function coverage into an Istanbul coverage report keyed by the
// project's source files.
package convert

import (
	"fmt"

	"github.com/avatar-generator/covconv/internal/coverage"
	"github.com/avatar-generator/covconv/internal/logging"
	log "github.com/sirupsen/logrus"
)

var (
	logger = logging.AppLogger().WithFields(log.Fields{"component": "convert"})
)

// Options describe the project whose coverage is converted.
type Options struct {
	// ProjectRoot is the absolute path of the project.
	ProjectRoot string
	// SourceDir is the source directory relative to ProjectRoot.
	SourceDir string
	// ComponentsDir is the single file component directory relative to SourceDir.
	ComponentsDir string
}

// Converter converts coverage entries of a single project.
type Converter struct {
	root     string
	resolver *Resolver
}

// NewConverter creates a converter for the project described by opts.
func NewConverter(opts Options) *Converter {
	return &Converter{
		root:     opts.ProjectRoot,
		resolver: NewResolver(opts.ProjectRoot, opts.SourceDir, opts.ComponentsDir),
	}
}

// Convert resolves every entry to its source file and collects the converted coverage. Entries which
// cannot be resolved or do not belong to the project sources are skipped.
func (c *Converter) Convert(entries []coverage.Entry) coverage.Report {
	report := coverage.Report{}
	for i, entry := range entries {
		entryLogger := logger.WithFields(log.Fields{"entry": i + 1, "url": entry.URL})

		path, ok := c.resolver.Resolve(entry.URL)
		if !ok {
			entryLogger.Info("file not found with any path strategy, skipping")
			continue
		}
		entryLogger.Debugf("file found at: %s", path)

		if !isSource(c.root, path) {
			entryLogger.Infof("skipping %s (dependency, test or non-source file)", path)
			continue
		}

		fc := ConvertEntry(path, entry)
		if report.Add(fc) {
			entryLogger.Warnf("%s was already converted from another entry, merged coverage", path)
		}
		entryLogger.Infof("coverage data added for %s: %d/%d functions covered, %d statements", path, countCovered(fc.F), len(fc.FnMap), len(fc.StatementMap))
	}
	return report
}

// ConvertEntry builds the Istanbul coverage of the file at path from the function coverage of entry.
// Every function range becomes one statement, covered whenever its function was executed.
func ConvertEntry(path string, entry coverage.Entry) *coverage.FileCoverage {
	fc := coverage.NewFileCoverage(path)

	statementID := 0
	for fnID, fn := range entry.Functions {
		name := fn.FunctionName
		if name == "" {
			name = fmt.Sprintf("(anonymous_%d)", fnID)
		}

		var decl coverage.Location
		if len(fn.Ranges) > 0 {
			decl = coverage.LocationOf(fn.Ranges[0])
		}
		fc.FnMap[fnID] = coverage.FunctionMapping{Name: name, Decl: decl, Loc: decl}

		covered := 0
		if fn.Count > 0 {
			covered = 1
		}
		fc.F[fnID] = covered

		for _, r := range fn.Ranges {
			fc.StatementMap[statementID] = coverage.LocationOf(r)
			fc.S[statementID] = covered
			statementID++
		}
	}
	return fc
}

func countCovered(counts map[int]int) int {
	covered := 0
	for _, count := range counts {
		if count > 0 {
			covered++
		}
	}
	return covered
}
