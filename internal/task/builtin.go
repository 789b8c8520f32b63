package task

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/paths"
	"github.com/jmorrow/labkit/internal/template"
	"github.com/jmorrow/labkit/internal/validate"
	"github.com/jmorrow/labkit/pkg/fileutil"
)

// NewDefaultRegistry returns a Registry with the built-in tasks registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("validate-configs", ValidateConfigs)
	r.Register("ensure-dirs", EnsureDirs)
	r.Register("template", Template)
	return r
}

// ValidateConfigs runs the full validation suite against the project.
func ValidateConfigs(rc *RunContext) (any, error) {
	result := validate.All(rc.Cache, rc.Logger)
	if result.HasErrors() {
		return result, errors.Newf("validation found %d error(s)", len(result.Errors()))
	}
	return fmt.Sprintf("validation passed (%d warning(s))", len(result.Warnings())), nil
}

// EnsureDirs creates every directory declared in paths.yaml.
func EnsureDirs(rc *RunContext) (any, error) {
	created, err := rc.Cache.EnsureProjectDirectories(rc.Logger)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("%d directories created", len(created)), nil
}

// Template is an example task: it writes a tiny artifact under the
// data.products directory. New tasks are typically copied from it.
func Template(rc *RunContext) (any, error) {
	pathsDoc, err := rc.Cache.Paths()
	if err != nil {
		return nil, err
	}
	products, err := template.GetByDotted(pathsDoc, "data.products")
	if err != nil {
		return nil, errors.Wrap(err, "paths.yaml must declare data.products")
	}
	dir, ok := products.(string)
	if !ok {
		return nil, errors.Newf("paths key data.products is not a string (got %T)", products)
	}

	dir = paths.Resolve(dir, rc.Cache.Root())
	if err := paths.EnsureDir(dir, 0); err != nil {
		return nil, err
	}

	out := filepath.Join(dir, "example_artifact.txt")
	content := fmt.Sprintf("hello from template task\nwritten: %s\n",
		time.Now().UTC().Format(time.RFC3339))
	if err := fileutil.AtomicWriteFile(out, []byte(content), 0o644); err != nil {
		return nil, err
	}
	return out, nil
}
