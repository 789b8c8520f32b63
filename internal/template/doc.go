// Package template implements the placeholder resolution engine used to turn
// the templates in files.yaml into concrete paths.
//
// Templates embed placeholders of the form {dotted.key}, optionally with an
// inline transform: {key::upper}, {key::lower}, {key::title}, {key::strip}.
// Placeholders are looked up in a flat Context built by flattening the
// nested configuration documents into dotted keys.
//
// Resolution is a single pass: a substituted value is never re-scanned for
// placeholders, so expansion always terminates and resolving an already
// resolved value is a no-op. Multi-level indirection is supported only
// through params.placeholders, which are resolved in declaration order while
// the context is built.
package template
