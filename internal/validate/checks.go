package validate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmorrow/labkit/internal/config"
	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/files"
	"github.com/jmorrow/labkit/internal/paths"
	"github.com/jmorrow/labkit/internal/template"
)

// Configs attempts to load all three project config documents. Load failures
// are collected for every document rather than stopping at the first.
func Configs(root, configDir string) *Result {
	result := &Result{}
	for _, name := range []string{config.DocPaths, config.DocParams, config.DocFiles} {
		if _, err := config.LoadDocument(root, configDir, name); err != nil {
			switch {
			case errors.Is(err, errors.ErrConfigNotFound):
				result.AddError(name+".yaml", "config file not found", nil)
			case errors.Is(err, errors.ErrConfigParse):
				result.AddError(name+".yaml", err.Error(), nil)
			default:
				result.AddError(name+".yaml", err.Error(), nil)
			}
		}
	}
	return result
}

// Paths checks every string leaf of the paths document: the directory must
// exist, or sit under an existing directory so it could be created. Nothing
// is created. Absolute paths outside the project root that do not exist are
// reported as warnings, since they typically live on external storage.
func Paths(doc config.Document, root string) *Result {
	result := &Result{}
	for key, value := range template.Flatten(doc, "") {
		leaf, ok := value.(string)
		if !ok {
			result.AddWarning(key, "path leaf is not a string", value)
			continue
		}
		if strings.Contains(leaf, "{") {
			result.AddError(key, "path contains a placeholder marker; paths.yaml must be literal", leaf)
			continue
		}

		resolved := paths.Resolve(leaf, root)
		info, err := os.Stat(resolved)
		switch {
		case err == nil && info.IsDir():
			// exists
		case err == nil:
			result.AddError(key, "exists but is not a directory", resolved)
		default:
			ancestor := nearestExisting(resolved)
			ainfo, aerr := os.Stat(ancestor)
			if aerr != nil || !ainfo.IsDir() {
				result.AddError(key, fmt.Sprintf("cannot be created (%s is not a directory)", ancestor), resolved)
			} else if outsideRoot(resolved, root) {
				result.AddWarning(key, "external path does not exist", resolved)
			}
		}
	}
	return result
}

// Templates renders every template string in the files document against the
// generic context and aggregates every unresolved placeholder found, with a
// fuzzy-matched suggestion per missing key, so a single run reports every
// broken template.
func Templates(cache *config.Cache) *Result {
	result := &Result{}

	filesDoc, err := cache.Files()
	if err != nil {
		result.AddError("files.yaml", err.Error(), nil)
		return result
	}
	ctx, err := files.NewResolver(cache).Context(nil)
	if err != nil {
		result.AddError("", err.Error(), nil)
		return result
	}

	known := ctx.Keys()
	for key, value := range template.Flatten(filesDoc, "") {
		tmpl, ok := value.(string)
		if !ok {
			continue
		}
		_, missing := template.ResolveAll(tmpl, ctx)
		for _, miss := range missing {
			msg := fmt.Sprintf("unresolved placeholder {%s}", miss)
			if similar := template.Suggest(miss, known); len(similar) > 0 {
				msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(similar, ", "))
			}
			result.AddError(key, msg, tmpl)
		}
	}
	return result
}

// Placeholders checks the derived expressions under params.placeholders.
// Expressions referencing keys absent from the context only break templates
// that use them, so they are reported as warnings.
func Placeholders(cache *config.Cache) *Result {
	result := &Result{}

	_, paramsDoc, _, err := cache.Configs()
	if err != nil {
		result.AddError("params.yaml", err.Error(), nil)
		return result
	}
	block, ok := paramsDoc["placeholders"].(map[string]any)
	if !ok {
		return result
	}
	ctx, err := files.NewResolver(cache).Context(nil)
	if err != nil {
		result.AddError("", err.Error(), nil)
		return result
	}

	known := ctx.Keys()
	for name, value := range block {
		expr, ok := value.(string)
		if !ok {
			continue
		}
		_, missing := template.ResolveAll(expr, ctx)
		for _, miss := range missing {
			msg := fmt.Sprintf("references unresolved key {%s}", miss)
			if similar := template.Suggest(miss, known); len(similar) > 0 {
				msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(similar, ", "))
			}
			result.AddWarning("placeholders."+name, msg, expr)
		}
	}
	return result
}

// PlaceholderCycles detects circular dependencies among the expressions
// under params.placeholders. Substitution is single-pass so a cycle cannot
// loop forever, but it leaves markers behind; declaring one is always a
// mistake.
func PlaceholderCycles(paramsDoc config.Document) *Result {
	result := &Result{}

	block, ok := paramsDoc["placeholders"].(map[string]any)
	if !ok {
		return result
	}

	deps := make(map[string][]string, len(block))
	for name, value := range block {
		if expr, ok := value.(string); ok {
			for _, ref := range template.Placeholders(expr) {
				if _, isPlaceholder := block[ref]; isPlaceholder {
					deps[name] = append(deps[name], ref)
				}
			}
		}
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var walk func(node string) bool
	walk = func(node string) bool {
		visited[node] = true
		onStack[node] = true
		stack = append(stack, node)

		for _, dep := range deps[node] {
			if !visited[dep] {
				if walk(dep) {
					return true
				}
			} else if onStack[dep] {
				cycle := append(append([]string{}, stack...), dep)
				result.AddError("placeholders."+node,
					"circular dependency: "+strings.Join(cycle, " -> "), nil)
				return true
			}
		}

		onStack[node] = false
		stack = stack[:len(stack)-1]
		return false
	}

	for _, name := range sortedKeys(block) {
		if !visited[name] {
			walk(name)
		}
	}
	return result
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All runs every check against the project behind cache. When the config
// documents fail to load, the remaining checks are skipped since they have
// nothing to inspect.
func All(cache *config.Cache, logger *slog.Logger) *Result {
	result := Configs(cache.Root(), cache.ConfigDir())
	if result.HasErrors() {
		logger.Debug("config load failed, skipping path and template checks")
		return result
	}

	pathsDoc, err := cache.Paths()
	if err != nil {
		result.AddError("", err.Error(), nil)
		return result
	}
	result.Merge(Paths(pathsDoc, cache.Root()))
	result.Merge(Templates(cache))
	result.Merge(Placeholders(cache))
	if paramsDoc, err := cache.Params(); err == nil {
		result.Merge(PlaceholderCycles(paramsDoc))
	}

	logger.Debug("validation complete",
		"errors", len(result.Errors()),
		"warnings", len(result.Warnings()))
	return result
}

// nearestExisting walks up from path to the closest ancestor that exists.
func nearestExisting(path string) string {
	p := filepath.Dir(path)
	for {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return p
		}
		p = parent
	}
}

func outsideRoot(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return true
	}
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
