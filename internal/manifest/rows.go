package manifest

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmorrow/labkit/internal/errors"
)

// Row is a single manifest record: column name to value. Values are limited
// to string, int64, float64 and bool so the tabular codec can round-trip
// them exactly.
type Row map[string]any

// Parser turns a scanned file path into the structured fields of its row.
// Implementations typically dissect the basename according to the project's
// filename convention.
type Parser interface {
	Parse(path string) (Row, error)
}

// ParserFunc adapts an ordinary function to the Parser interface.
type ParserFunc func(path string) (Row, error)

// Parse calls f.
func (f ParserFunc) Parse(path string) (Row, error) {
	return f(path)
}

// DefaultParser extracts only the basename (without extension) as the sole
// structured field. Useful when a manifest is wanted but no filename rules
// exist.
var DefaultParser = ParserFunc(func(path string) (Row, error) {
	return Row{"base": stem(path)}, nil
})

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// RowError records a single path the parser could not handle.
type RowError struct {
	// Path is the file whose name failed to parse.
	Path string
	// Cause is the parser's error.
	Cause error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return errors.Wrapf(errors.ErrRowParse, "%s: %v", e.Path, e.Cause).Error()
}

// Unwrap lets errors.Is match ErrRowParse.
func (e *RowError) Unwrap() error {
	return errors.ErrRowParse
}

// BuildRows applies parser to each path, producing one row per path. Every
// row carries a "path" column with the scanned path; the parser's fields are
// merged on top. A path the parser rejects is collected as a RowError and the
// build continues, so one malformed filename does not block the manifest for
// the rest.
func BuildRows(paths []string, parser Parser, logger *slog.Logger) ([]Row, []*RowError) {
	if parser == nil {
		parser = DefaultParser
	}

	var rows []Row
	var failed []*RowError
	for _, p := range paths {
		fields, err := parser.Parse(p)
		if err != nil {
			failed = append(failed, &RowError{Path: p, Cause: err})
			if logger != nil {
				logger.Warn("skipping unparseable file", "path", p, "error", err)
			}
			continue
		}

		row := Row{"path": p}
		for k, v := range fields {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, failed
}

// Filter is a row predicate. A row survives filtering only if every filter
// returns true for it.
type Filter func(Row) bool

// ApplyFilters applies an ordered sequence of filters to rows, short-circuiting
// per row on the first rejecting filter. A nil or empty filter list keeps
// every row.
func ApplyFilters(rows []Row, filters []Filter) []Row {
	if len(filters) == 0 {
		return rows
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		keep := true
		for _, f := range filters {
			if !f(row) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

// columnOrder derives the column order for a row set: "path" first, "base"
// second when present, remaining columns sorted.
func columnOrder(row Row) []string {
	var rest []string
	for k := range row {
		if k != "path" && k != "base" {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	cols := make([]string, 0, len(row))
	if _, ok := row["path"]; ok {
		cols = append(cols, "path")
	}
	if _, ok := row["base"]; ok {
		cols = append(cols, "base")
	}
	return append(cols, rest...)
}
