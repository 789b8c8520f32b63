package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmorrow/labkit/internal/errors"
)

// Scan lists the files under dir matching any of the given glob patterns.
// The result is deduplicated and sorted lexicographically by path so manifest
// output is reproducible across runs on an unchanged directory, regardless of
// filesystem listing order. Directories are never returned.
//
// Non-recursive by default: patterns are matched against entries of dir
// itself. With recursive set, the whole tree under dir is walked and patterns
// are matched against file basenames.
func Scan(dir string, patterns []string, recursive bool) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"*"}
	}

	seen := make(map[string]bool)

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			for _, pat := range patterns {
				ok, err := filepath.Match(pat, d.Name())
				if err != nil {
					return errors.Wrapf(err, "bad pattern %q", pat)
				}
				if ok {
					seen[path] = true
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "scanning %s", dir)
		}
	} else {
		for _, pat := range patterns {
			matches, err := filepath.Glob(filepath.Join(dir, pat))
			if err != nil {
				return nil, errors.Wrapf(err, "bad pattern %q", pat)
			}
			for _, m := range matches {
				info, err := os.Stat(m)
				if err != nil || info.IsDir() {
					continue
				}
				seen[m] = true
			}
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}
