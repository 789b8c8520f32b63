// Package scaffold generates new project skeletons: the config documents,
// the data directory tree and a handful of starter files. Generation is
// idempotent; files that already exist are left alone unless force is set.
package scaffold

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/paths"
	"github.com/jmorrow/labkit/internal/template"
	"github.com/jmorrow/labkit/pkg/fileutil"
)

// Meta describes the project being generated. It is persisted to
// project.toml at the project root.
type Meta struct {
	Name        string `toml:"name"`
	Slug        string `toml:"slug"`
	Description string `toml:"description,omitempty"`
	Author      string `toml:"author,omitempty"`
}

type projectFile struct {
	Project Meta `toml:"project"`
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and collapses runs of non-alphanumerics into
// single hyphens.
func Slugify(name string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// recipe is the fixed set of relative directories and starter files every
// generated project gets. Starter file contents are templates rendered
// against the project metadata.
var recipe = struct {
	dirs  []string
	files map[string]string
}{
	dirs: []string{
		"config",
		"data/raw",
		"data/interim",
		"data/products",
		"notebooks",
		"reports",
	},
	files: map[string]string{
		"config/paths.yaml": `data:
  root: data
  raw: data/raw
  interim: data/interim
  products: data/products
notebooks: notebooks
reports: reports
`,
		"config/params.yaml": `project: {project.slug}
run_id: v1
placeholders:
  stub: "{project}_{run_id}"
`,
		"config/files.yaml": `templates:
  cube: "{data.raw}/{stub}_cube.fits"
outputs:
  manifest: "{data.products}/{stub}_manifest.ecsv"
  summary: "{data.products}/{stub}_summary.csv"
`,
		"README.md": `# {project.name}

{project.description}

Generated with labkit. Edit the documents under config/ to describe your
directory layout (paths.yaml), parameters (params.yaml) and file templates
(files.yaml), then run:

    labkit dirs        # create the declared directories
    labkit validate    # check configs, paths and templates
`,
		".gitignore": `data/
*.ecsv
.DS_Store
`,
	},
}

// Generate creates the project skeleton under target. Existing files are
// skipped unless force is set; directories are created unconditionally
// (creation is idempotent). It returns the relative paths of the files it
// wrote.
func Generate(target string, meta Meta, force bool, logger *slog.Logger) ([]string, error) {
	if meta.Slug == "" {
		meta.Slug = Slugify(meta.Name)
	}
	if meta.Slug == "" {
		return nil, errors.New("project name produces an empty slug")
	}

	ctx := template.Context{
		"project.name":        meta.Name,
		"project.slug":        meta.Slug,
		"project.description": meta.Description,
	}

	for _, dir := range recipe.dirs {
		if err := paths.EnsureDir(filepath.Join(target, dir), 0); err != nil {
			return nil, errors.Wrapf(err, "creating %s", dir)
		}
	}

	var written []string
	names := make([]string, 0, len(recipe.files))
	for name := range recipe.files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dest := filepath.Join(target, name)
		if !force {
			if _, err := os.Stat(dest); err == nil {
				logger.Debug("skipping existing file", "path", name)
				continue
			}
		}
		// Markers not in ctx (run_id, stub, data.*) belong to the generated
		// project's own config language and must survive rendering.
		content, _ := template.ResolveAll(recipe.files[name], ctx)
		if err := fileutil.AtomicWriteFile(dest, []byte(content), 0o644); err != nil {
			return written, errors.Wrapf(err, "writing %s", name)
		}
		written = append(written, name)
		logger.Debug("wrote starter file", "path", name)
	}

	path, err := writeProjectFile(target, meta, force)
	if err != nil {
		return written, err
	}
	if path != "" {
		written = append(written, path)
	}
	return written, nil
}

// writeProjectFile persists the metadata to project.toml, skipping an
// existing file unless force is set.
func writeProjectFile(target string, meta Meta, force bool) (string, error) {
	dest := filepath.Join(target, "project.toml")
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return "", nil
		}
	}
	data, err := toml.Marshal(projectFile{Project: meta})
	if err != nil {
		return "", errors.Wrap(err, "encoding project.toml")
	}
	if err := fileutil.AtomicWriteFile(dest, data, 0o644); err != nil {
		return "", errors.Wrap(err, "writing project.toml")
	}
	return "project.toml", nil
}

// LoadMeta reads project.toml from the project root.
func LoadMeta(root string) (Meta, error) {
	data, err := os.ReadFile(filepath.Join(root, "project.toml"))
	if err != nil {
		return Meta{}, errors.Wrap(err, "reading project.toml")
	}
	var pf projectFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return Meta{}, errors.Wrap(err, "parsing project.toml")
	}
	return pf.Project, nil
}
