package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmorrow/labkit/internal/config"
	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/logging"
	"github.com/jmorrow/labkit/internal/paths"
)

// cmdLogger returns the logger installed by the root command's pre-run.
func cmdLogger(cmd *cobra.Command) *slog.Logger {
	return logging.FromContext(cmd.Context())
}

// projectCache locates the project root and returns a config cache for it.
// The --root flag wins; otherwise the root is found by walking up from the
// working directory.
func projectCache() (*config.Cache, error) {
	root := rootDir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "getting working directory")
		}
		root, err = paths.FindProjectRoot(cwd)
		if err != nil {
			return nil, errors.NewUserError(err,
				"run 'labkit init <name>' to create a project, or pass --root")
		}
	}

	dir := configDirFlag
	if dir == "" {
		dir = viper.GetString("config_dir")
	}
	return config.NewCache(root, dir), nil
}

// parseSetFlags turns repeated "key=value" flags into an override map.
func parseSetFlags(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extra := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.NewUserError(
				errors.Newf("invalid --set value %q", pair),
				"use --set key=value")
		}
		extra[key] = value
	}
	return extra, nil
}
