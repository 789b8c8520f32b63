package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/jmorrow/labkit/internal/errors"
)

// ConfigDirName is the conventional name of the project configuration
// directory. Its presence marks a directory as a project root.
const ConfigDirName = "config"

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// FindProjectRoot walks upward from start looking for a project root marker:
// a config/ directory or a .git entry. It returns ErrProjectRootNotFound if
// the walk reaches the filesystem root without finding one.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(err, "resolving start directory")
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, ConfigDirName)); err == nil && info.IsDir() {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Wrapf(errors.ErrProjectRootNotFound,
				"no config/ directory or .git found above %s", start)
		}
		dir = parent
	}
}

// Expand expands a leading ~ and any $VAR references in path.
// The result is not required to exist.
func Expand(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}

// Resolve expands path and makes it absolute relative to base when it is
// not already absolute.
func Resolve(path, base string) string {
	p := Expand(path)
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p)
}

// EnsureDir creates the directory and any necessary parents with the
// specified permissions. If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfigHome returns the XDG config home directory used for labkit's own
// tool-level configuration.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
func DataHome() string {
	return xdg.DataHome
}
