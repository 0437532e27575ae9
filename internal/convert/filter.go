package convert

import (
	"path/filepath"
	"strings"

	"github.com/avatar-generator/covconv/internal/diag"
	"github.com/avatar-generator/covconv/internal/util"
)

// excludedSegments are path segments marking dependencies and tests.
var excludedSegments = []string{"node_modules", "test", "tests"}

// isSource reports whether path is a project source file that should receive coverage. Segments above
// the project root are not considered, a checkout below e.g. /home/ci/test must still work.
func isSource(root, path string) bool {
	if !util.HasAnySuffix(path, diag.SourceExtensions...) {
		return false
	}

	checked := path
	if rel, err := filepath.Rel(root, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		checked = rel
	}
	for _, segment := range strings.Split(filepath.ToSlash(checked), "/") {
		if util.Contains(excludedSegments, segment) {
			return false
		}
	}
	return true
}
