// Package validate cross-checks a project's configuration: that the three
// config documents load, that declared paths exist or can be created, and
// that every file template resolves without missing context keys.
//
// Checks use partial-failure semantics. Each check inspects everything it
// can and aggregates every problem into a Result, so one run surfaces the
// complete set of issues rather than stopping at the first.
package validate
