package diag

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/avatar-generator/covconv/internal/coverage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("// source\n"), 0644))
}

func TestListSourceTree(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	touch(t, filepath.Join(src, "main.js"))
	touch(t, filepath.Join(src, "style.css"))
	touch(t, filepath.Join(src, "components", "AvatarGenerator.vue"))
	touch(t, filepath.Join(src, "components", "icons", "IconSparkle.vue"))
	touch(t, filepath.Join(src, "store", "avatar.ts"))

	var buf bytes.Buffer
	require.NoError(t, ListSourceTree(&buf, src, 3))

	expected := "🔍 Source files in your project:\n" +
		"📁 components/\n" +
		"  📄 AvatarGenerator.vue\n" +
		"  📁 icons/\n" +
		"    📄 IconSparkle.vue\n" +
		"📄 main.js\n" +
		"📁 store/\n" +
		"  📄 avatar.ts\n"
	assert.Equal(t, expected, buf.String())
}

func TestListSourceTreeDepthBound(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	touch(t, filepath.Join(src, "a", "b", "deep.js"))
	touch(t, filepath.Join(src, "top.js"))

	var buf bytes.Buffer
	require.NoError(t, ListSourceTree(&buf, src, 0))

	assert.Contains(t, buf.String(), "📁 a/\n")
	assert.Contains(t, buf.String(), "📄 top.js\n")
	assert.NotContains(t, buf.String(), "b/")
	assert.NotContains(t, buf.String(), "deep.js")
}

func TestListSourceTreeMissingDirectory(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")

	var buf bytes.Buffer
	require.NoError(t, ListSourceTree(&buf, src, 3))
	assert.Contains(t, buf.String(), "❌ source directory not found at "+src)
}

func TestPrintSummary(t *testing.T) {
	report := coverage.Report{}
	report.Add(coverage.NewFileCoverage("/proj/src/main.js"))
	report.Add(coverage.NewFileCoverage("/proj/src/App.vue"))

	var buf bytes.Buffer
	PrintSummary(&buf, report, "/proj/.nyc_output/out.json")

	out := buf.String()
	assert.Contains(t, out, "📊 Final coverage data contains 2 files")
	assert.Contains(t, out, "   - /proj/src/App.vue\n   - /proj/src/main.js\n")
	assert.Contains(t, out, "written to /proj/.nyc_output/out.json")
	assert.Contains(t, out, "npx nyc report")
	assert.NotContains(t, out, "WARNING")
}

func TestPrintSummaryEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, coverage.Report{}, "out.json")

	assert.Contains(t, buf.String(), "📊 Final coverage data contains 0 files")
	assert.Contains(t, buf.String(), "WARNING: No files were successfully mapped for coverage!")
}
