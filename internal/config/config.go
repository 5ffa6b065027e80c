// Package config loads a BundleConfig from a config file via viper.
// Environment variables are not read; command-line flag overrides are
// applied by cmd/jsbundle after loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsbundle/jsbundle/domain"
	"github.com/spf13/viper"
)

// candidateFileNames are tried, in order, when no explicit config path is
// given.
var candidateFileNames = []string{
	".jsbundle.yml",
	".jsbundle.yaml",
	".jsbundle.json",
	"jsbundle.config.yml",
	"jsbundle.config.yaml",
	"jsbundle.config.json",
}

// LoadConfig loads a BundleConfig. configPath, if non-empty, is read
// directly; otherwise the working directory (and its ancestors) are
// searched for one of candidateFileNames. If nothing is found, the
// defaults are returned unchanged.
func LoadConfig(configPath string) (*domain.BundleConfig, error) {
	if configPath == "" {
		configPath = discoverConfigFile(".")
	}

	cfg := domain.DefaultBundleConfig()
	if configPath == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, &domain.ConfigError{Path: configPath, Err: err}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, &domain.ConfigError{Path: configPath, Err: err}
	}

	return cfg, nil
}

// discoverConfigFile walks up from dir looking for one of
// candidateFileNames, returning "" if none is found by the filesystem
// root.
func discoverConfigFile(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range candidateFileNames {
			candidate := filepath.Join(abs, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

// SaveConfig writes cfg to path in the format viper picks from path's
// extension (YAML for .yml/.yaml).
func SaveConfig(cfg *domain.BundleConfig, path string) error {
	v := viper.New()
	v.Set("entry", cfg.Entry)
	v.Set("output", cfg.Output)
	v.Set("plugins", cfg.Plugins)
	v.Set("minify", cfg.Minify)
	v.Set("source_map", cfg.SourceMap)
	v.Set("concurrency", cfg.Concurrency)
	v.Set("verbose", cfg.Verbose)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return v.WriteConfigAs(path)
}
