package template

import (
	"strings"

	"github.com/jmorrow/labkit/internal/errors"
)

// GetByDotted walks a nested mapping one segment at a time and returns the
// value at the dotted key. It fails with ErrKeyNotFound when a segment is
// absent or when the walk reaches a non-mapping before the key is exhausted,
// naming the segment it stopped at and suggesting near-miss keys at that
// level.
func GetByDotted(mapping map[string]any, dotted string) (any, error) {
	var current any = mapping
	parts := strings.Split(dotted, ".")

	for i, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, errors.Wrapf(errors.ErrKeyNotFound,
				"key %q: %q is not a mapping", dotted, strings.Join(parts[:i], "."))
		}
		value, ok := m[part]
		if !ok {
			err := errors.Wrapf(errors.ErrKeyNotFound, "key %q (stopped at %q)", dotted, part)
			if similar := Suggest(part, mapKeys(m)); len(similar) > 0 {
				err = errors.Wrapf(err, "did you mean %s", strings.Join(similar, ", "))
			}
			return nil, err
		}
		current = value
	}
	return current, nil
}

// DeepGet is the lenient variant of GetByDotted: it returns fallback instead
// of an error when any segment is missing. Use it where absence is an
// expected, non-fatal case.
func DeepGet(mapping map[string]any, dotted string, fallback any) any {
	value, err := GetByDotted(mapping, dotted)
	if err != nil {
		return fallback
	}
	return value
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
