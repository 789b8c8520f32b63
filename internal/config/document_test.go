package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmorrow/labkit/internal/errors"
)

// writeProjectConfig creates a project root with a config/ directory holding
// the given documents.
func writeProjectConfig(t *testing.T, docs map[string]string) string {
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
	return root
}

func TestLoadDocument(t *testing.T) {
	root := writeProjectConfig(t, map[string]string{
		"paths": "data:\n  root: data/raw\n  products: data/products\n",
	})

	doc, err := LoadDocument(root, "config", "paths")
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}

	data, ok := doc["data"].(map[string]any)
	if !ok {
		t.Fatalf("data is %T, want mapping", doc["data"])
	}
	if data["root"] != "data/raw" {
		t.Errorf("data.root = %v", data["root"])
	}
}

func TestLoadDocumentMissing(t *testing.T) {
	root := writeProjectConfig(t, nil)

	_, err := LoadDocument(root, "config", "paths")
	if !errors.Is(err, errors.ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadDocumentMalformed(t *testing.T) {
	root := writeProjectConfig(t, map[string]string{
		"params": "key: [unclosed\n",
	})

	_, err := LoadDocument(root, "config", "params")
	if !errors.Is(err, errors.ErrConfigParse) {
		t.Errorf("error = %v, want ErrConfigParse", err)
	}
}

func TestLoadDocumentEmpty(t *testing.T) {
	root := writeProjectConfig(t, map[string]string{"files": ""})

	doc, err := LoadDocument(root, "config", "files")
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if doc == nil || len(doc) != 0 {
		t.Errorf("doc = %v, want empty document", doc)
	}
}
