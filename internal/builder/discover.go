package builder

import (
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// CollectSources globs for source files under basedir and returns their
// paths relative to it, sorted and deduplicated. Discovery is repeated fresh
// on every run; there is no manifest or staleness tracking.
func CollectSources(basedir string, patterns []string) ([]string, error) {
	var files []string
	fsys := os.DirFS(basedir)

	for _, pat := range patterns {
		matches, err := doublestar.Glob(fsys, pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}
