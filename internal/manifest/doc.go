// Package manifest scans data directories and records what was found as a
// typed tabular file.
//
// A manifest build has four stages: Scan lists files matching glob patterns
// in deterministic order, a Parser turns each filename into a structured row,
// filters drop rows the caller does not want, and Write persists the rows.
// The on-disk format is ECSV-style: a commented YAML header declaring column
// names and types above a CSV body, so manifests stay readable as plain text
// while round-tripping types exactly.
//
// A malformed filename does not abort a build; row parse failures are
// collected and reported alongside the rows that did parse.
package manifest
