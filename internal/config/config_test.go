package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigNoFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	os.Chdir(dir)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output != "bundle.js" {
		t.Errorf("expected default output bundle.js, got %s", cfg.Output)
	}
}

func TestLoadConfigFromExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jsbundle.config.yml")
	content := "entry: src/main.js\noutput: out/bundle.js\nplugins: [banner]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Entry != "src/main.js" || cfg.Output != "out/bundle.js" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.Plugins) != 1 || cfg.Plugins[0] != "banner" {
		t.Errorf("expected [banner] plugin, got %v", cfg.Plugins)
	}
}

func TestLoadConfigDiscoversFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".jsbundle.yml")
	if err := os.WriteFile(path, []byte("entry: index.js\noutput: bundle.js\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	os.Chdir(dir)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Entry != "index.js" {
		t.Errorf("expected discovered config, got entry=%s", cfg.Entry)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jsbundle.config.yml")

	cfg := LoadDefaultConfig()
	cfg.Entry = "src/main.js"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Entry != "src/main.js" {
		t.Errorf("expected round-tripped entry, got %s", loaded.Entry)
	}
}
