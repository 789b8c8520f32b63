package template

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jmorrow/labkit/internal/errors"
)

// placeholderRe matches {dotted.key} markers with an optional inline
// transform suffix, e.g. {run.id::upper}.
var placeholderRe = regexp.MustCompile(`\{([A-Za-z0-9_.]+)(?:::(\w+))?\}`)

// transforms are the inline placeholder transforms.
var transforms = map[string]func(string) string{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"strip": strings.TrimSpace,
	"title": titleCase,
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Resolve substitutes every placeholder in template with its value from ctx.
// The substitution is a single pass: substituted values are not re-scanned,
// so resolution always terminates.
//
// A placeholder referencing a key absent from ctx fails the whole resolution
// with ErrUnresolvedPlaceholder naming the key, including a fuzzy-matched
// suggestion when a near miss exists. An unknown transform name is ignored
// and the raw value used.
func Resolve(template string, ctx Context) (string, error) {
	result, missing := substitute(template, ctx)
	if len(missing) > 0 {
		key := missing[0]
		err := errors.Wrapf(errors.ErrUnresolvedPlaceholder, "placeholder {%s}", key)
		if similar := Suggest(key, ctx.Keys()); len(similar) > 0 {
			err = errors.Wrapf(err, "did you mean %s", strings.Join(similar, ", "))
		}
		return "", err
	}
	return result, nil
}

// ResolveAll is the validation-mode variant of Resolve: instead of failing on
// the first unresolved placeholder it returns the full list of missing keys
// in order of appearance, deduplicated. The partially resolved string is
// returned for diagnostics only and must not be used as a resolved value.
func ResolveAll(template string, ctx Context) (string, []string) {
	return substitute(template, ctx)
}

// substitute performs the single-pass replacement, leaving unresolved
// placeholders untouched and collecting their keys.
func substitute(template string, ctx Context) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	result := placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		groups := placeholderRe.FindStringSubmatch(match)
		key, transform := groups[1], groups[2]

		value, ok := ctx[key]
		if !ok {
			if !seen[key] {
				seen[key] = true
				missing = append(missing, key)
			}
			return match
		}

		s := stringify(value)
		if transform != "" {
			if fn, ok := transforms[transform]; ok {
				s = fn(s)
			}
		}
		return s
	})

	return result, missing
}

// ResolveBlock resolves a template block of arbitrary shape. Strings are
// resolved as templates, mappings and sequences are rebuilt with each child
// resolved recursively, and non-string scalars are returned unchanged.
// Resolving an already resolved block is a no-op.
func ResolveBlock(value any, ctx Context) (any, error) {
	switch v := value.(type) {
	case string:
		return Resolve(v, ctx)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			resolved, err := ResolveBlock(child, ctx)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", k)
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			resolved, err := ResolveBlock(child, ctx)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return value, nil
	}
}

// Placeholders returns the distinct placeholder keys referenced by template,
// in order of appearance.
func Placeholders(template string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, groups := range placeholderRe.FindAllStringSubmatch(template, -1) {
		if !seen[groups[1]] {
			seen[groups[1]] = true
			keys = append(keys, groups[1])
		}
	}
	return keys
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
