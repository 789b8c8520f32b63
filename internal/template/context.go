package template

import "sort"

// Context is the flat substitution table for template resolution: dotted key
// to value. Values are stringified at substitution time.
type Context map[string]any

// Keys returns the context keys in sorted order.
func (c Context) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Flatten converts a nested mapping into dotted-key form. A nested mapping
// contributes keys of the form parent.child; scalars and sequences are kept
// as leaf values. Empty mappings contribute no keys.
func Flatten(nested map[string]any, prefix string) Context {
	flat := make(Context)
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			for ck, cv := range Flatten(child, key) {
				flat[ck] = cv
			}
			continue
		}
		flat[key] = v
	}
	return flat
}

// MergeContext merges an ordered sequence of flat mappings into one Context.
// Later mappings overwrite earlier ones on key collision.
func MergeContext(sources ...map[string]any) Context {
	ctx := make(Context)
	for _, src := range sources {
		for k, v := range src {
			ctx[k] = v
		}
	}
	return ctx
}
