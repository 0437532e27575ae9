package capture

import (
	"sort"
	"unicode/utf16"

	"github.com/avatar-generator/covconv/internal/coverage"
	"github.com/go-rod/rod/lib/proto"
)

// lineIndex converts the UTF-16 offsets reported by the profiler into line/column positions.
type lineIndex struct {
	// starts holds the offset of the first unit of every line.
	starts []int
}

func newLineIndex(source string) *lineIndex {
	starts := []int{0}
	offset := 0
	for _, r := range source {
		offset += utf16.RuneLen(r)
		if r == '\n' {
			starts = append(starts, offset)
		}
	}
	return &lineIndex{starts: starts}
}

// position returns the 1-based line and 0-based column of offset.
func (idx *lineIndex) position(offset int) coverage.Position {
	line := sort.Search(len(idx.starts), func(i int) bool {
		return idx.starts[i] > offset
	})
	if line == 0 {
		line = 1
	}
	return coverage.Position{Line: line, Column: offset - idx.starts[line-1]}
}

func (idx *lineIndex) toRange(r *proto.ProfilerCoverageRange) coverage.Range {
	start := idx.position(r.StartOffset)
	end := idx.position(r.EndOffset)
	return coverage.Range{
		StartLine:   start.Line,
		StartColumn: start.Column,
		EndLine:     end.Line,
		EndColumn:   end.Column,
	}
}

// FromProfile converts precise coverage taken from the profiler into coverage entries. sources maps
// each script to its source text; scripts without a URL or a known source are left out.
func FromProfile(scripts []*proto.ProfilerScriptCoverage, sources map[proto.RuntimeScriptID]string) []coverage.Entry {
	entries := make([]coverage.Entry, 0, len(scripts))
	for _, script := range scripts {
		if script.URL == "" {
			continue
		}
		source, ok := sources[script.ScriptID]
		if !ok {
			logger.Debugf("no source for script %s, skipping", script.URL)
			continue
		}

		idx := newLineIndex(source)
		entry := coverage.Entry{URL: script.URL, Functions: make([]coverage.Function, 0, len(script.Functions))}
		for _, fn := range script.Functions {
			function := coverage.Function{FunctionName: fn.FunctionName, Ranges: make([]coverage.Range, 0, len(fn.Ranges))}
			if len(fn.Ranges) > 0 {
				function.Count = fn.Ranges[0].Count
			}
			for _, r := range fn.Ranges {
				function.Ranges = append(function.Ranges, idx.toRange(r))
			}
			entry.Functions = append(entry.Functions, function)
		}
		entries = append(entries, entry)
	}
	return entries
}
