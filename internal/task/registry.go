// Package task provides the named-task registry: a mapping from task name to
// a runnable function, used by `labkit task list` and `labkit task run`.
//
// Tasks are registered explicitly, typically from an init function in the
// file defining the task. They receive a RunContext carrying the project's
// configuration cache, file resolver and logger, and return an arbitrary
// result.
package task

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/jmorrow/labkit/internal/config"
	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/files"
	"github.com/jmorrow/labkit/internal/template"
)

// RunContext carries the project state a task needs.
type RunContext struct {
	// Cache serves the project configuration documents.
	Cache *config.Cache
	// Files resolves file-template keys to paths.
	Files *files.Resolver
	// Logger is the task's structured logger.
	Logger *slog.Logger
}

// Func is a runnable task. The returned value is printed by the CLI when not
// nil.
type Func func(rc *RunContext) (any, error)

// Registry maps task names to runnable functions.
type Registry struct {
	tasks map[string]Func
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]Func)}
}

// Register adds a task under name, replacing any previous registration.
func (r *Registry) Register(name string, fn Func) {
	r.tasks[name] = fn
}

// Names returns the registered task names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the task registered under name. Unknown names fail with
// ErrTaskNotFound, listing the available tasks and a fuzzy-matched
// suggestion when a near miss exists.
func (r *Registry) Get(name string) (Func, error) {
	fn, ok := r.tasks[name]
	if !ok {
		err := errors.Wrapf(errors.ErrTaskNotFound,
			"%q (available: %s)", name, strings.Join(r.Names(), ", "))
		if similar := template.Suggest(name, r.Names()); len(similar) > 0 {
			err = errors.Wrapf(err, "did you mean %s", strings.Join(similar, ", "))
		}
		return nil, err
	}
	return fn, nil
}

// Run looks up and runs the task registered under name.
func (r *Registry) Run(name string, rc *RunContext) (any, error) {
	fn, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	rc.Logger.Debug("running task", "task", name)
	return fn(rc)
}
