package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmorrow/labkit/internal/errors"
)

func TestFindProjectRootConfigDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	if got != root {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}
}

func TestFindProjectRootGitMarker(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: elsewhere\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(root)
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	if got != root {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}
}

func TestFindProjectRootMissing(t *testing.T) {
	// A bare temp dir has no markers and its parents should not either,
	// but walking to / is environment-dependent; only check the error type
	// when discovery actually fails.
	_, err := FindProjectRoot(t.TempDir())
	if err != nil && !errors.Is(err, errors.ErrProjectRootNotFound) {
		t.Errorf("error = %v, want ErrProjectRootNotFound", err)
	}
}

func TestExpand(t *testing.T) {
	t.Setenv("LABKIT_TEST_DIR", "/srv/data")

	tests := []struct {
		in   string
		want string
	}{
		{"$LABKIT_TEST_DIR/products", "/srv/data/products"},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		if got := Expand(tt.in); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got, want := Expand("~/data"), filepath.Join(home, "data"); got != want {
		t.Errorf("Expand(~/data) = %q, want %q", got, want)
	}
}

func TestResolveRelative(t *testing.T) {
	got := Resolve("data/raw", "/project")
	if got != "/project/data/raw" {
		t.Errorf("Resolve() = %q, want /project/data/raw", got)
	}
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("first EnsureDir() error = %v", err)
	}
	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("second EnsureDir() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Error("created path is not a directory")
	}
}

func TestConfigHome(t *testing.T) {
	got := ConfigHome()
	if got == "" {
		t.Error("ConfigHome() returned empty string")
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigHome() = %q, want absolute path", got)
	}
}
