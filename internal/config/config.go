// Package config provides configuration management for labkit.
//
// Two layers live here. The tool-level configuration (this file) is loaded
// with Viper and controls labkit's own behavior: where the project config
// directory lives and default manifest scan patterns. The project documents
// (paths.yaml, params.yaml, files.yaml) are plain YAML mappings loaded by
// [LoadDocument] and cached by [Cache].
package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "labkit"

// Config represents the tool-level configuration structure.
type Config struct {
	Version          int      `mapstructure:"version" yaml:"version"`
	ConfigDir        string   `mapstructure:"config_dir" yaml:"config_dir"`
	ManifestPatterns []string `mapstructure:"manifest_patterns" yaml:"manifest_patterns"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support
	viper.SetEnvPrefix("LABKIT")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("config_dir", paths.ConfigDirName)
	viper.SetDefault("manifest_patterns", []string{"*"})
}

// Load reads the tool-level configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found
// (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}
