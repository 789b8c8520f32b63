package manifest

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/logging"
)

func TestBuildRowsDefaultParser(t *testing.T) {
	rows, failed := BuildRows([]string{"/data/ngc628_co21.fits"}, nil, logging.NewDiscard())
	if len(failed) != 0 {
		t.Fatalf("failures: %v", failed)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %v", rows)
	}

	want := Row{"path": "/data/ngc628_co21.fits", "base": "ngc628_co21"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("row = %v, want %v", rows[0], want)
	}
}

// galaxyParser dissects <galaxy>_<line> basenames.
func galaxyParser(path string) (Row, error) {
	base := stem(path)
	galaxy, line, ok := strings.Cut(base, "_")
	if !ok {
		return nil, errors.Newf("basename %q does not match <galaxy>_<line>", base)
	}
	return Row{"base": base, "galaxy": galaxy, "line": line}, nil
}

func TestBuildRowsCustomParser(t *testing.T) {
	rows, failed := BuildRows([]string{"/d/ngc628_co21.fits"}, ParserFunc(galaxyParser), logging.NewDiscard())
	if len(failed) != 0 {
		t.Fatalf("failures: %v", failed)
	}
	if rows[0]["galaxy"] != "ngc628" || rows[0]["line"] != "co21" {
		t.Errorf("row = %v", rows[0])
	}
	if rows[0]["path"] != "/d/ngc628_co21.fits" {
		t.Errorf("path column missing: %v", rows[0])
	}
}

func TestBuildRowsContinuesAfterParseFailure(t *testing.T) {
	paths := []string{"/d/ngc628_co21.fits", "/d/malformed.fits", "/d/ngc3627_co21.fits"}

	rows, failed := BuildRows(paths, ParserFunc(galaxyParser), logging.NewDiscard())
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rows))
	}
	if len(failed) != 1 {
		t.Fatalf("failed = %v, want 1", failed)
	}
	if !errors.Is(failed[0], errors.ErrRowParse) {
		t.Errorf("failure = %v, want ErrRowParse", failed[0])
	}
	if failed[0].Path != "/d/malformed.fits" {
		t.Errorf("failure path = %q", failed[0].Path)
	}
}

func TestApplyFilters(t *testing.T) {
	rows := []Row{
		{"base": "row1", "n": int64(1)},
		{"base": "row2", "n": int64(2)},
		{"base": "row3", "n": int64(3)},
	}

	f1 := func(r Row) bool { return r["base"] != "row2" }
	f2 := func(r Row) bool { return r["base"] != "row3" }

	got := ApplyFilters(rows, []Filter{f1, f2})
	if len(got) != 1 || got[0]["base"] != "row1" {
		t.Errorf("ApplyFilters() = %v, want only row1", got)
	}
}

func TestApplyFiltersEmpty(t *testing.T) {
	rows := []Row{{"base": "a"}}
	if got := ApplyFilters(rows, nil); len(got) != 1 {
		t.Errorf("ApplyFilters(nil) = %v", got)
	}
}

func TestColumnOrder(t *testing.T) {
	row := Row{"line": "co21", "path": "/p", "galaxy": "ngc628", "base": "b"}
	got := columnOrder(row)
	want := []string{"path", "base", "galaxy", "line"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("columnOrder() = %v, want %v", got, want)
	}
}
