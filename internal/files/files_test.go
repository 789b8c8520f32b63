package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmorrow/labkit/internal/config"
	"github.com/jmorrow/labkit/internal/errors"
)

func newResolver(t *testing.T, docs map[string]string) (*Resolver, string) {
	t.Helper()
	root := t.TempDir()
	cfgDir := filepath.Join(root, "config")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(cfgDir, name+".yaml"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewResolver(config.NewCache(root, "")), root
}

func fixtureDocs() map[string]string {
	return map[string]string{
		"paths": strings.Join([]string{
			"data:",
			"  root: /srv/data",
			"  products: /srv/data/products",
		}, "\n") + "\n",
		"params": strings.Join([]string{
			"run_id: r042",
			"galaxy: ngc628",
			"placeholders:",
			"  stub: \"{galaxy}_{run_id}\"",
		}, "\n") + "\n",
		"files": strings.Join([]string{
			"templates:",
			"  cube: \"{data.root}/{stub}.fits\"",
			"  mom0: \"{data.products}/{stub}_mom0.fits\"",
			"outputs:",
			"  summary: \"{data.products}/summary_{run_id}.csv\"",
		}, "\n") + "\n",
	}
}

func TestResolveRelativeKey(t *testing.T) {
	r, _ := newResolver(t, fixtureDocs())

	got, err := r.Resolve("cube", nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "/srv/data/ngc628_r042.fits" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolveAbsoluteKey(t *testing.T) {
	r, _ := newResolver(t, fixtureDocs())

	got, err := r.Resolve("outputs.summary", nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "/srv/data/products/summary_r042.csv" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolveExtraOverrides(t *testing.T) {
	r, _ := newResolver(t, fixtureDocs())

	got, err := r.Resolve("outputs.summary", map[string]any{"run_id": "override"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "/srv/data/products/summary_override.csv" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolveUnknownKeySuggests(t *testing.T) {
	r, _ := newResolver(t, fixtureDocs())

	_, err := r.Resolve("cub", nil)
	if !errors.Is(err, errors.ErrUnknownFileKey) {
		t.Fatalf("error = %v, want ErrUnknownFileKey", err)
	}
	if !strings.Contains(err.Error(), "cube") {
		t.Errorf("error %q lacks suggestion", err)
	}
}

func TestResolveUnresolvedPlaceholderSuggests(t *testing.T) {
	docs := fixtureDocs()
	docs["files"] = "templates:\n  bad: \"{data.root}/summary_{params.run_id}.csv\"\n"
	docs["params"] = "params.runid: 7\n"
	r, _ := newResolver(t, docs)

	_, err := r.Resolve("bad", nil)
	if !errors.Is(err, errors.ErrUnresolvedPlaceholder) {
		t.Fatalf("error = %v, want ErrUnresolvedPlaceholder", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "params.run_id") {
		t.Errorf("error %q does not name the missing key", msg)
	}
	if !strings.Contains(msg, "params.runid") {
		t.Errorf("error %q lacks the edit-distance suggestion", msg)
	}
}

func TestPlaceholdersResolveInDeclarationOrder(t *testing.T) {
	docs := fixtureDocs()
	// "stub" sorts after "combined" but is declared first; sorted-order
	// application would leave {stub} unresolved inside combined.
	docs["params"] = strings.Join([]string{
		"run_id: r042",
		"galaxy: ngc628",
		"placeholders:",
		"  stub: \"{galaxy}_{run_id}\"",
		"  combined: \"{stub}_full\"",
	}, "\n") + "\n"
	docs["files"] = "templates:\n  cube: \"{data.root}/{combined}.fits\"\n"
	r, _ := newResolver(t, docs)

	got, err := r.Resolve("cube", nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "/srv/data/ngc628_r042_full.fits" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestPathIsAbsolute(t *testing.T) {
	docs := fixtureDocs()
	docs["paths"] = "data:\n  root: data/raw\n" // relative on purpose
	docs["files"] = "templates:\n  cube: \"{data.root}/{run_id}.fits\"\n"
	r, root := newResolver(t, docs)

	got, err := r.Path("cube", nil)
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Path() = %q, want absolute", got)
	}
	if want := filepath.Join(root, "data", "raw", "r042.fits"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if strings.Contains(got, "{") {
		t.Errorf("Path() %q contains an unresolved marker", got)
	}
}

func TestKeys(t *testing.T) {
	r, _ := newResolver(t, fixtureDocs())

	got := r.Keys()
	want := []string{"cube", "mom0", "outputs.summary"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
