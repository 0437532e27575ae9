package coverage

import "sort"

// Entry is the coverage of one script as captured by the browser profiler.
type Entry struct {
	URL       string     `json:"url"`
	Functions []Function `json:"functions"`
}

// Function is the execution record of a single function of a script.
type Function struct {
	FunctionName string  `json:"functionName,omitempty"`
	Count        int     `json:"count"`
	Ranges       []Range `json:"ranges"`
}

// Range is a line/column span of a function. Lines are 1-based, columns 0-based.
type Range struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// Position is a point in a source file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is a span in a source file.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// FunctionMapping describes a function of the Istanbul fnMap.
type FunctionMapping struct {
	Name string   `json:"name"`
	Decl Location `json:"decl"`
	Loc  Location `json:"loc"`
}

// BranchMapping describes a branch of the Istanbul branchMap. It is never populated from browser coverage.
type BranchMapping struct {
	Type      string     `json:"type"`
	Loc       Location   `json:"loc"`
	Locations []Location `json:"locations"`
}

// FileCoverage is the Istanbul coverage record of a single source file.
type FileCoverage struct {
	Path         string                  `json:"path"`
	StatementMap map[int]Location        `json:"statementMap"`
	FnMap        map[int]FunctionMapping `json:"fnMap"`
	BranchMap    map[int]BranchMapping   `json:"branchMap"`
	S            map[int]int             `json:"s"`
	F            map[int]int             `json:"f"`
	B            map[int][]int           `json:"b"`
}

// Report is the Istanbul coverage map keyed by source file path.
type Report map[string]*FileCoverage

// NewFileCoverage creates an empty coverage record for the given path.
func NewFileCoverage(path string) *FileCoverage {
	return &FileCoverage{
		Path:         path,
		StatementMap: map[int]Location{},
		FnMap:        map[int]FunctionMapping{},
		BranchMap:    map[int]BranchMapping{},
		S:            map[int]int{},
		F:            map[int]int{},
		B:            map[int][]int{},
	}
}

// LocationOf returns the location spanned by r.
func LocationOf(r Range) Location {
	return Location{
		Start: Position{Line: r.StartLine, Column: r.StartColumn},
		End:   Position{Line: r.EndLine, Column: r.EndColumn},
	}
}

// Paths returns the file paths of the report in lexical order.
func (r Report) Paths() []string {
	paths := make([]string, 0, len(r))
	for path := range r {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Add adds fc to the report. If the report already holds a record for the same path the two are
// merged and true is returned.
func (r Report) Add(fc *FileCoverage) bool {
	existing, ok := r[fc.Path]
	if !ok {
		r[fc.Path] = fc
		return false
	}
	existing.merge(fc)
	return true
}

// merge folds other into fc. Statements and functions at a location fc already tracks are combined,
// the hit count being the larger of the two; all others are appended with ids following fc's own.
func (fc *FileCoverage) merge(other *FileCoverage) {
	statementIDs := make(map[Location]int, len(fc.StatementMap))
	for id, loc := range fc.StatementMap {
		statementIDs[loc] = id
	}
	for _, id := range sortedKeys(other.S) {
		loc := other.StatementMap[id]
		if existingID, ok := statementIDs[loc]; ok {
			fc.S[existingID] = max(fc.S[existingID], other.S[id])
			continue
		}
		newID := len(fc.StatementMap)
		fc.StatementMap[newID] = loc
		fc.S[newID] = other.S[id]
		statementIDs[loc] = newID
	}

	type fnKey struct {
		name string
		decl Location
	}
	functionIDs := make(map[fnKey]int, len(fc.FnMap))
	for id, fn := range fc.FnMap {
		functionIDs[fnKey{fn.Name, fn.Decl}] = id
	}
	for _, id := range sortedKeys(other.F) {
		fn := other.FnMap[id]
		key := fnKey{fn.Name, fn.Decl}
		if existingID, ok := functionIDs[key]; ok {
			fc.F[existingID] = max(fc.F[existingID], other.F[id])
			continue
		}
		newID := len(fc.FnMap)
		fc.FnMap[newID] = fn
		fc.F[newID] = other.F[id]
		functionIDs[key] = newID
	}
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
