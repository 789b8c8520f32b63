// Package files resolves logical file keys from files.yaml into concrete,
// fully substituted filesystem paths.
//
// A key is either absolute (rooted at the top of files.yaml, e.g.
// "outputs.summary") or relative to the templates block (e.g. "cube" for
// "templates.cube"). The value at the key must be a string template; it is
// rendered against the generic context built from paths.yaml and params.yaml.
package files

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmorrow/labkit/internal/config"
	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/paths"
	"github.com/jmorrow/labkit/internal/template"
)

// TemplatesBlock is the files.yaml block that relative keys resolve under.
const TemplatesBlock = "templates"

// placeholdersKey is the params.yaml block defining derived context values.
const placeholdersKey = "placeholders"

// Resolver resolves file-template keys against the cached project
// configuration.
type Resolver struct {
	cache *config.Cache
}

// NewResolver creates a Resolver over the given config cache.
func NewResolver(cache *config.Cache) *Resolver {
	return &Resolver{cache: cache}
}

// Context builds the generic template context: paths.yaml flattened into
// dotted keys, top-level params merged over it, params.placeholders resolved
// in declaration order against the context built so far, and extra values
// applied last with the highest precedence.
func (r *Resolver) Context(extra map[string]any) (template.Context, error) {
	pathsDoc, paramsDoc, _, err := r.cache.Configs()
	if err != nil {
		return nil, err
	}

	ctx := template.MergeContext(
		template.Flatten(pathsDoc, ""),
		template.Flatten(paramsDoc, ""),
	)

	// Derived placeholders may reference paths, params and earlier
	// placeholders. Unresolved references are left as markers here; they
	// surface as resolution failures only if a template actually uses them.
	if block, ok := paramsDoc[placeholdersKey].(map[string]any); ok {
		names := r.cache.ParamsBlockOrder(placeholdersKey)
		if len(names) != len(block) {
			names = sortedKeys(block)
		}
		for _, name := range names {
			expr, ok := block[name].(string)
			if !ok {
				continue
			}
			value, _ := template.ResolveAll(expr, ctx)
			ctx[name] = value
		}
	}

	for k, v := range extra {
		ctx[k] = v
	}
	return ctx, nil
}

// Resolve looks up key in the files document and renders its template
// against the generic context plus extra. Unknown keys fail with
// ErrUnknownFileKey; templates referencing missing context keys fail with
// ErrUnresolvedPlaceholder, both with fuzzy-matched suggestions.
func (r *Resolver) Resolve(key string, extra map[string]any) (string, error) {
	filesDoc, err := r.cache.Files()
	if err != nil {
		return "", err
	}

	dotted := key
	first, _, _ := strings.Cut(key, ".")
	if _, ok := filesDoc[first]; !ok {
		dotted = TemplatesBlock + "." + key
	}

	value, err := template.GetByDotted(filesDoc, dotted)
	if err != nil {
		wrapped := errors.Wrapf(errors.ErrUnknownFileKey, "%q", key)
		if similar := template.Suggest(key, r.Keys()); len(similar) > 0 {
			wrapped = errors.Wrapf(wrapped, "did you mean %s", strings.Join(similar, ", "))
		}
		return "", wrapped
	}

	tmpl, ok := value.(string)
	if !ok {
		return "", errors.Newf("template at %q is not a string (got %T)", dotted, value)
	}

	ctx, err := r.Context(extra)
	if err != nil {
		return "", err
	}

	resolved, err := template.Resolve(tmpl, ctx)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %q", dotted)
	}
	return resolved, nil
}

// Path is the public path-resolution entry point. The returned string is an
// absolute filesystem path with every placeholder substituted; relative
// templates are anchored at the project root.
func (r *Resolver) Path(key string, extra map[string]any) (string, error) {
	resolved, err := r.Resolve(key, extra)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(resolved) {
		resolved = paths.Resolve(resolved, r.cache.Root())
	}
	return resolved, nil
}

// Keys returns every dotted key in the files document whose value is a
// string template, in sorted order. Keys under the templates block are
// reported in their short relative form.
func (r *Resolver) Keys() []string {
	filesDoc, err := r.cache.Files()
	if err != nil {
		return nil
	}

	var keys []string
	var walk func(doc map[string]any, prefix string)
	walk = func(doc map[string]any, prefix string) {
		for k, v := range doc {
			dotted := k
			if prefix != "" {
				dotted = prefix + "." + k
			}
			switch child := v.(type) {
			case map[string]any:
				walk(child, dotted)
			case string:
				keys = append(keys, strings.TrimPrefix(dotted, TemplatesBlock+"."))
			}
		}
	}
	walk(filesDoc, "")
	sort.Strings(keys)
	return keys
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
