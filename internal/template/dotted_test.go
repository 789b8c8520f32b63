package template

import (
	"strings"
	"testing"

	"github.com/jmorrow/labkit/internal/errors"
)

func nestedDoc() map[string]any {
	return map[string]any{
		"templates": map[string]any{
			"cube":    "{data.root}/{galaxy}.fits",
			"moments": map[string]any{"mom0": "m0.fits"},
		},
		"version": 2,
	}
}

func TestGetByDotted(t *testing.T) {
	doc := nestedDoc()

	tests := []struct {
		key  string
		want any
	}{
		{"version", 2},
		{"templates.cube", "{data.root}/{galaxy}.fits"},
		{"templates.moments.mom0", "m0.fits"},
	}
	for _, tt := range tests {
		got, err := GetByDotted(doc, tt.key)
		if err != nil {
			t.Fatalf("GetByDotted(%q) error = %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("GetByDotted(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestGetByDottedMissingSegment(t *testing.T) {
	_, err := GetByDotted(nestedDoc(), "templates.cubes")
	if !errors.Is(err, errors.ErrKeyNotFound) {
		t.Fatalf("error = %v, want ErrKeyNotFound", err)
	}
	// Near miss "cube" should be suggested.
	if !strings.Contains(err.Error(), "cube") {
		t.Errorf("error %q lacks suggestion", err)
	}
}

func TestGetByDottedThroughScalar(t *testing.T) {
	_, err := GetByDotted(nestedDoc(), "version.minor")
	if !errors.Is(err, errors.ErrKeyNotFound) {
		t.Fatalf("error = %v, want ErrKeyNotFound", err)
	}
}

func TestDeepGet(t *testing.T) {
	doc := nestedDoc()

	if got := DeepGet(doc, "templates.moments.mom0", "fallback"); got != "m0.fits" {
		t.Errorf("DeepGet() = %v", got)
	}
	if got := DeepGet(doc, "missing.key", "fallback"); got != "fallback" {
		t.Errorf("DeepGet() fallback = %v", got)
	}
	if got := DeepGet(doc, "missing.key", nil); got != nil {
		t.Errorf("DeepGet() nil fallback = %v", got)
	}
}

func TestSuggest(t *testing.T) {
	candidates := []string{"mom0", "mom1", "cube", "mom0_mask"}

	got := Suggest("mom0", candidates)
	if len(got) != 2 || got[0] != "mom0" || got[1] != "mom1" {
		t.Errorf("Suggest() = %v, want [mom0 mom1]", got)
	}

	if got := Suggest("zzzzzz", candidates); len(got) != 0 {
		t.Errorf("Suggest() = %v, want none", got)
	}
}

func TestSuggestCaseInsensitive(t *testing.T) {
	got := Suggest("MOM0", []string{"mom0"})
	if len(got) != 1 || got[0] != "mom0" {
		t.Errorf("Suggest() = %v", got)
	}
}
