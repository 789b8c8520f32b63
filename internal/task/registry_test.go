package task

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmorrow/labkit/internal/config"
	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/files"
	"github.com/jmorrow/labkit/internal/logging"
)

func newRunContext(t *testing.T, docs map[string]string) *RunContext {
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
	cache := config.NewCache(root, "")
	return &RunContext{
		Cache:  cache,
		Files:  files.NewResolver(cache),
		Logger: logging.NewDiscard(),
	}
}

func TestRegisterAndRun(t *testing.T) {
	r := NewRegistry()
	r.Register("count", func(rc *RunContext) (any, error) {
		return 42, nil
	})

	got, err := r.Run("count", newRunContext(t, nil))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Run() = %v, want 42", got)
	}
}

func TestNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		r.Register(name, func(rc *RunContext) (any, error) { return nil, nil })
	}

	got := r.Names()
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

func TestGetUnknownSuggests(t *testing.T) {
	r := NewRegistry()
	r.Register("ensure-dirs", EnsureDirs)

	_, err := r.Get("ensure-dir")
	if !errors.Is(err, errors.ErrTaskNotFound) {
		t.Fatalf("error = %v, want ErrTaskNotFound", err)
	}
	if !strings.Contains(err.Error(), "ensure-dirs") {
		t.Errorf("error %q lacks suggestion", err)
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register("t", func(rc *RunContext) (any, error) { return "first", nil })
	r.Register("t", func(rc *RunContext) (any, error) { return "second", nil })

	got, err := r.Run("t", newRunContext(t, nil))
	if err != nil {
		t.Fatal(err)
	}
	if got != "second" {
		t.Errorf("Run() = %v, want second", got)
	}
}

func TestBuiltinValidateConfigs(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"paths":  "data:\n  root: data\n",
		"params": "run_id: v1\n",
		"files":  "templates:\n  cube: \"{data.root}/{run_id}.fits\"\n",
	})

	got, err := NewDefaultRegistry().Run("validate-configs", rc)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if s, ok := got.(string); !ok || !strings.Contains(s, "passed") {
		t.Errorf("Run() = %v, want pass summary", got)
	}
}

func TestBuiltinValidateConfigsFails(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"paths":  "data:\n  root: data\n",
		"params": "run_id: v1\n",
		"files":  "templates:\n  cube: \"{data.root}/{galaxy}.fits\"\n",
	})

	_, err := NewDefaultRegistry().Run("validate-configs", rc)
	if err == nil {
		t.Fatal("expected an error for the broken template")
	}
}

func TestBuiltinTemplate(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"paths":  "data:\n  products: data/products\n",
		"params": "",
		"files":  "",
	})

	got, err := NewDefaultRegistry().Run("template", rc)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out, ok := got.(string)
	if !ok {
		t.Fatalf("Run() = %T, want path string", got)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from template task") {
		t.Errorf("artifact content = %q", data)
	}
}

func TestBuiltinTemplateMissingProductsDir(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"paths":  "data:\n  raw: data/raw\n",
		"params": "",
		"files":  "",
	})

	if _, err := NewDefaultRegistry().Run("template", rc); err == nil {
		t.Fatal("expected an error without a data.products key")
	}
}

func TestBuiltinEnsureDirs(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"paths":  "data:\n  raw: data/raw\n  products: data/products\n",
		"params": "",
		"files":  "",
	})

	got, err := NewDefaultRegistry().Run("ensure-dirs", rc)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if s, ok := got.(string); !ok || !strings.Contains(s, "2 directories") {
		t.Errorf("Run() = %v", got)
	}
	for _, dir := range []string{"data/raw", "data/products"} {
		if fi, err := os.Stat(filepath.Join(rc.Cache.Root(), dir)); err != nil || !fi.IsDir() {
			t.Errorf("directory %s not created", dir)
		}
	}
}
