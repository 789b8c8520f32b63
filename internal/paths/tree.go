package paths

import (
	"log/slog"
	"os"
	"sort"

	"github.com/jmorrow/labkit/internal/errors"
)

// DirectoryError records a single directory that could not be created while
// walking a paths document.
type DirectoryError struct {
	// Key is the dotted key of the offending entry.
	Key string
	// Path is the directory that failed to create.
	Path string
	// Cause is the underlying filesystem error.
	Cause error
}

// Error implements the error interface.
func (e *DirectoryError) Error() string {
	return errors.Wrapf(errors.ErrDirectoryCreation, "%s (%s): %v", e.Key, e.Path, e.Cause).Error()
}

// Unwrap lets errors.Is match ErrDirectoryCreation.
func (e *DirectoryError) Unwrap() error {
	return errors.ErrDirectoryCreation
}

// EnsureTree walks a nested paths document and creates a directory for every
// string leaf, resolving relative values against base. Creation failures do
// not abort the walk: remaining siblings are still attempted and all failures
// are returned together. The returned slice lists the directories that were
// newly created, in sorted order.
func EnsureTree(doc map[string]any, base string, logger *slog.Logger) ([]string, []*DirectoryError) {
	var created []string
	var failed []*DirectoryError

	var walk func(value any, key string)
	walk = func(value any, key string) {
		switch v := value.(type) {
		case string:
			dir := Resolve(v, base)
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return
			}
			if err := EnsureDir(dir, 0); err != nil {
				failed = append(failed, &DirectoryError{Key: key, Path: dir, Cause: err})
				return
			}
			created = append(created, dir)
		case map[string]any:
			for k, child := range v {
				childKey := k
				if key != "" {
					childKey = key + "." + k
				}
				walk(child, childKey)
			}
		case []any:
			for _, child := range v {
				walk(child, key)
			}
		}
		// Non-string scalars carry no path information.
	}
	walk(doc, "")

	sort.Strings(created)
	if len(created) > 0 && logger != nil {
		logger.Info("created directories", "count", len(created))
	}
	return created, failed
}
