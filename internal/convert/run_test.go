package convert

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/avatar-generator/covconv/internal/coverage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	inputPath  = "playwright-coverage/coverage-data.json"
	outputPath = ".nyc_output/out.json"
)

func runOptions(root string, out *bytes.Buffer) RunOptions {
	return RunOptions{
		Options:    Options{ProjectRoot: root, SourceDir: "src", ComponentsDir: "components"},
		InputPath:  inputPath,
		OutputPath: outputPath,
		ListDepth:  3,
		Out:        out,
	}
}

func writeInput(t *testing.T, root string, entries []coverage.Entry) {
	data, err := json.MarshalIndent(entries, "", "  ")
	require.NoError(t, err)

	path := filepath.Join(root, inputPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestRunMissingInput(t *testing.T) {
	root := newProject(t, "src/App.js")

	var out bytes.Buffer
	err := Run(runOptions(root, &out))
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, ".nyc_output"))
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, out.String())
}

func TestRunEmptyInput(t *testing.T) {
	root := newProject(t, "src/App.js")
	writeInput(t, root, []coverage.Entry{})

	var out bytes.Buffer
	require.NoError(t, Run(runOptions(root, &out)))

	data, err := os.ReadFile(filepath.Join(root, outputPath))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
	assert.Contains(t, out.String(), "No files were successfully mapped")
}

func TestRunMalformedInput(t *testing.T) {
	root := newProject(t, "src/App.js")
	path := filepath.Join(root, inputPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("[{"), 0644))

	var out bytes.Buffer
	err := Run(runOptions(root, &out))
	assert.Error(t, err)

	_, err = os.Stat(filepath.Join(root, outputPath))
	assert.True(t, os.IsNotExist(err))
}

func TestRunWritesReport(t *testing.T) {
	root := newProject(t, "src/App.js", "src/components/AvatarGenerator.vue")
	writeInput(t, root, []coverage.Entry{
		{
			URL: "file://" + filepath.Join(root, "src", "App.js"),
			Functions: []coverage.Function{
				{FunctionName: "setup", Count: 3, Ranges: []coverage.Range{rng(1, 0, 10, 1)}},
			},
		},
		{
			URL: "http://localhost:5173/src/components/AvatarGenerator.vue",
			Functions: []coverage.Function{
				{FunctionName: "generateAvatar", Count: 0, Ranges: []coverage.Range{rng(3, 2, 9, 3), rng(5, 4, 7, 5)}},
			},
		},
	})

	var out bytes.Buffer
	require.NoError(t, Run(runOptions(root, &out)))

	report, err := coverage.ReadReport(filepath.Join(root, outputPath))
	require.NoError(t, err)
	require.Len(t, report, 2)

	app := report[filepath.Join(root, "src", "App.js")]
	require.NotNil(t, app)
	assert.Equal(t, map[int]int{0: 1}, app.F)
	assert.Equal(t, map[int]int{0: 1}, app.S)

	generator := report[filepath.Join(root, "src", "components", "AvatarGenerator.vue")]
	require.NotNil(t, generator)
	assert.Equal(t, map[int]int{0: 0}, generator.F)
	assert.Equal(t, map[int]int{0: 0, 1: 0}, generator.S)

	assert.Contains(t, out.String(), "📄 App.js")
	assert.Contains(t, out.String(), "📁 components/")
	assert.Contains(t, out.String(), "Final coverage data contains 2 files")
}

func TestRunAbsoluteOutputPath(t *testing.T) {
	root := newProject(t, "src/App.js")
	writeInput(t, root, nil)

	output := filepath.Join(t.TempDir(), "reports", "out.json")
	opts := runOptions(root, &bytes.Buffer{})
	opts.OutputPath = output

	require.NoError(t, Run(opts))
	_, err := os.Stat(output)
	assert.NoError(t, err)
}
