// Package paths provides filesystem path utilities for labkit: project root
// discovery, ~ and $VAR expansion, idempotent directory creation for the
// trees declared in paths.yaml, and a scoped working-directory change.
//
// A project root is any directory containing a config/ directory or a .git
// entry; discovery walks upward from the starting directory the same way git
// locates its repository root.
package paths
