package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"posekit/internal/config"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWD) })

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "posekit", "data")
	if cfg.Paths.DataPath != wantData {
		t.Fatalf("unexpected data path: got %q want %q", cfg.Paths.DataPath, wantData)
	}
	if cfg.Paths.MetadataFile != filepath.Join(wantData, "sessions.csv") {
		t.Fatalf("metadata file should resolve under data path, got %q", cfg.Paths.MetadataFile)
	}
	if cfg.Catalog.Path != filepath.Join(cfg.Paths.LogDir, "catalog.db") {
		t.Fatalf("catalog path should default under log dir, got %q", cfg.Catalog.Path)
	}
	if !cfg.Catalog.Enabled {
		t.Fatal("expected catalog enabled by default")
	}
	if cfg.Merge.Format != "npy" {
		t.Fatalf("unexpected default merge format: %q", cfg.Merge.Format)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %s/%s", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
data_path = "/srv/poses"
skeleton_path = "/srv/poses/skeleton.yaml"

[metadata]
delimiter = ";"
id_column = "session"

[merge]
workers = 4
format = "table"

[catalog]
enabled = false

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Paths.DataPath != "/srv/poses" {
		t.Fatalf("unexpected data path: %q", cfg.Paths.DataPath)
	}
	if cfg.Paths.MetadataFile != "/srv/poses/sessions.csv" {
		t.Fatalf("unexpected metadata file: %q", cfg.Paths.MetadataFile)
	}
	if cfg.DelimiterRune() != ';' {
		t.Fatalf("unexpected delimiter: %q", cfg.DelimiterRune())
	}
	if cfg.Metadata.IDColumn != "session" || cfg.Metadata.PathColumn != "path" {
		t.Fatalf("unexpected metadata columns: %+v", cfg.Metadata)
	}
	if cfg.Merge.Workers != 4 || cfg.Merge.Format != "table" {
		t.Fatalf("unexpected merge settings: %+v", cfg.Merge)
	}
	if cfg.Catalog.Enabled {
		t.Fatal("expected catalog disabled")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging settings: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"multi-char delimiter", func(c *config.Config) { c.Metadata.Delimiter = "||" }},
		{"id and path columns collide", func(c *config.Config) { c.Metadata.PathColumn = c.Metadata.IDColumn }},
		{"negative workers", func(c *config.Config) { c.Merge.Workers = -1 }},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
		{"empty data path", func(c *config.Config) { c.Paths.DataPath = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.DataPath = "/tmp/posekit-test"
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	} else if !exists {
		t.Fatal("expected sample config to exist")
	}
}
