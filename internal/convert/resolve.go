package convert

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	fileScheme   = "file://"
	indexScript  = "index.js"
	componentExt = ".vue"
)

// strategy derives one candidate source path from a raw script path. An empty result means the
// strategy does not apply.
type strategy func(raw string) string

// Resolver maps the URL of a profiled script back to a source file of the project.
type Resolver struct {
	root       string
	strategies []strategy
	exists     func(path string) bool
}

// NewResolver creates a resolver for the project at root whose sources live in root/sourceDir and whose
// single file components live in root/sourceDir/componentsDir.
func NewResolver(root, sourceDir, componentsDir string) *Resolver {
	marker := "/" + filepath.ToSlash(sourceDir)
	sourceRoot := filepath.Join(root, sourceDir)

	r := &Resolver{root: root, exists: isFile}
	r.strategies = []strategy{
		// raw path as is
		func(raw string) string {
			return raw
		},
		// raw path under the project root
		func(raw string) string {
			if !strings.HasPrefix(raw, marker) {
				return ""
			}
			return filepath.Join(root, raw)
		},
		// same, leading separator stripped
		func(raw string) string {
			if !strings.HasPrefix(raw, marker) {
				return ""
			}
			return filepath.Join(root, raw[1:])
		},
		// base name in the source directory
		func(raw string) string {
			return filepath.Join(sourceRoot, filepath.Base(raw))
		},
		// base name in the components directory
		func(raw string) string {
			if filepath.Ext(raw) != componentExt {
				return ""
			}
			return filepath.Join(sourceRoot, componentsDir, filepath.Base(raw))
		},
	}
	return r
}

// RawPath extracts the path part of a script URL. File URLs are stripped of their scheme and
// percent-decoded, http(s) URLs are reduced to their path with the site root mapped to index.js.
// Anything else is returned unchanged.
func RawPath(scriptURL string) string {
	switch {
	case strings.HasPrefix(scriptURL, fileScheme):
		raw := strings.TrimPrefix(scriptURL, fileScheme)
		decoded, err := url.PathUnescape(raw)
		if err != nil {
			return raw
		}
		return decoded
	case strings.HasPrefix(scriptURL, "http"):
		parsed, err := url.Parse(scriptURL)
		if err != nil {
			return scriptURL
		}
		if parsed.Path == "" || parsed.Path == "/" {
			return indexScript
		}
		return parsed.Path
	}
	return scriptURL
}

// Candidates returns the paths probed for raw, in priority order. Relative candidates are anchored
// at the project root.
func (r *Resolver) Candidates(raw string) []string {
	candidates := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		candidate := s(raw)
		if candidate == "" {
			continue
		}
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(r.root, candidate)
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

// Resolve returns the first candidate for scriptURL that exists on disk.
func (r *Resolver) Resolve(scriptURL string) (string, bool) {
	raw := RawPath(scriptURL)
	logger.Debugf("processing path: %s", raw)

	for _, candidate := range r.Candidates(raw) {
		logger.Debugf("trying path: %s", candidate)
		if r.exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
