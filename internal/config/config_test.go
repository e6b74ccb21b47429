package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Repo != "." || cfg.Git != "git" || cfg.Backend != "cli" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Format != "table" || cfg.Color != "auto" || cfg.Theme != "auto" {
		t.Fatalf("unexpected output defaults: %+v", cfg)
	}
	if cfg.ReverseOrder != defaultReverseOrder {
		t.Fatalf("ReverseOrder = %v, want %v", cfg.ReverseOrder, defaultReverseOrder)
	}
	if cfg.Watch.Debounce != 350*time.Millisecond {
		t.Fatalf("Watch.Debounce = %v", cfg.Watch.Debounce)
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := writeConfig(t, `
backend = "native"
format = "json"
theme = "dark"
reverse_order = true
verbose = true

[watch]
debounce = "1s"
`)
	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend != "native" || cfg.Format != "json" || cfg.Theme != "dark" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if !cfg.ReverseOrder || !cfg.Verbose {
		t.Fatalf("bools not applied: %+v", cfg)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Fatalf("Watch.Debounce = %v, want 1s", cfg.Watch.Debounce)
	}
	if cfg.Git != "git" {
		t.Fatalf("unset keys should keep defaults, got git=%q", cfg.Git)
	}
}

func TestLoad_DefaultLocation(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "git-branches")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("color = \"never\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Color != "never" {
		t.Fatalf("Color = %q, want never", cfg.Color)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GIT_BRANCHES_FORMAT", "yaml")
	t.Setenv("GIT_BRANCHES_WATCH_DEBOUNCE", "2s")

	path := writeConfig(t, "format = \"json\"\n")
	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format != "yaml" {
		t.Fatalf("Format = %q, want yaml from env", cfg.Format)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Fatalf("Watch.Debounce = %v, want 2s from env", cfg.Watch.Debounce)
	}
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load(New(), filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := writeConfig(t, "format = \n")
	if _, err := Load(New(), path); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestDefaultDir_FollowsXDGConfigHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dirs := searchDirs()
	want := filepath.Join(home, "git-branches")
	if got := DefaultDir(); got != want {
		t.Fatalf("DefaultDir() = %q, want %q", got, want)
	}
	if len(dirs) == 0 || dirs[0] != want {
		t.Fatalf("searchDirs() = %v, want %q first", dirs, want)
	}
}

func TestLoad_SystemConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	system := t.TempDir()
	t.Setenv("XDG_CONFIG_DIRS", system)
	dir := filepath.Join(system, "git-branches")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("theme = \"dark\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Theme != "dark" {
		t.Fatalf("Theme = %q, want dark from $XDG_CONFIG_DIRS", cfg.Theme)
	}
}
