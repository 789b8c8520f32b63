package config

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/paths"
	"github.com/jmorrow/labkit/pkg/fileutil"
)

// Cache loads the three project documents once and serves them from memory
// until Invalidate is called. It replaces hidden process-global state with an
// object constructed by the application entry point and passed to the
// components that need configuration.
//
// Cache is not safe for concurrent use; callers needing concurrency must
// synchronize externally.
type Cache struct {
	root      string
	configDir string

	loaded bool
	paths  Document
	params Document
	files  Document

	paramsOrder map[string][]string
}

// NewCache creates a Cache rooted at the given project root. If configDir is
// empty, the conventional "config" directory is used.
func NewCache(root, configDir string) *Cache {
	if configDir == "" {
		configDir = paths.ConfigDirName
	}
	return &Cache{root: root, configDir: configDir}
}

// Root returns the project root the cache was constructed with.
func (c *Cache) Root() string {
	return c.root
}

// ConfigDir returns the config directory name relative to the root.
func (c *Cache) ConfigDir() string {
	return c.configDir
}

// Configs returns the (paths, params, files) documents, loading and caching
// them on first access. Subsequent calls return the same documents without
// touching disk. All load failures are reported together.
func (c *Cache) Configs() (pathsDoc, paramsDoc, filesDoc Document, err error) {
	if !c.loaded {
		var errs []error
		load := func(name string) Document {
			doc, err := LoadDocument(c.root, c.configDir, name)
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			return doc
		}

		pd := load(DocPaths)
		pr := load(DocParams)
		fl := load(DocFiles)
		if len(errs) > 0 {
			return nil, nil, nil, errors.Wrap(errors.Join(errs...), "loading project configs")
		}

		c.paths, c.params, c.files = pd, pr, fl
		c.loaded = true
	}
	return c.paths, c.params, c.files, nil
}

// Paths returns the paths document.
func (c *Cache) Paths() (Document, error) {
	doc, _, _, err := c.Configs()
	return doc, err
}

// Params returns the params document.
func (c *Cache) Params() (Document, error) {
	_, doc, _, err := c.Configs()
	return doc, err
}

// Files returns the files document.
func (c *Cache) Files() (Document, error) {
	_, _, doc, err := c.Configs()
	return doc, err
}

// ParamsBlockOrder returns the keys of the named params.yaml mapping block in
// declaration order. Derived placeholders may reference ones declared above
// them, so the order they were written in matters and the decoded map has
// forgotten it. A missing or unreadable block yields nil.
func (c *Cache) ParamsBlockOrder(block string) []string {
	if order, ok := c.paramsOrder[block]; ok {
		return order
	}
	data, err := fileutil.ReadFileWithLimit(filepath.Join(c.root, c.configDir, DocParams+".yaml"))
	if err != nil {
		return nil
	}
	if c.paramsOrder == nil {
		c.paramsOrder = map[string][]string{}
	}
	order := blockKeyOrder(data, block)
	c.paramsOrder[block] = order
	return order
}

// Invalidate discards the cached documents; the next access reloads from
// disk. Use it after on-disk config edits or for test isolation.
func (c *Cache) Invalidate() {
	c.loaded = false
	c.paths, c.params, c.files = nil, nil, nil
	c.paramsOrder = nil
}

// EnsureProjectDirectories creates every directory declared in the paths
// document. Creation failures do not stop the walk; all failures are
// aggregated into the returned error.
func (c *Cache) EnsureProjectDirectories(logger *slog.Logger) ([]string, error) {
	doc, err := c.Paths()
	if err != nil {
		return nil, err
	}

	created, failed := paths.EnsureTree(doc, c.root, logger)
	if len(failed) > 0 {
		msgs := make([]string, len(failed))
		for i, f := range failed {
			msgs[i] = f.Error()
		}
		return created, errors.Wrapf(errors.ErrDirectoryCreation,
			"%d of %d directories failed: %s", len(failed), len(failed)+len(created), strings.Join(msgs, "; "))
	}
	return created, nil
}
