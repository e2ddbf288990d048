package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.Data.CRFPaths) != 1 || cfg.Data.CRFPaths[0] != "obj.crf" {
		t.Errorf("expected default archive obj.crf, got %v", cfg.Data.CRFPaths)
	}
	if len(cfg.Data.TextureDirs) == 0 {
		t.Error("expected default texture directories")
	}
	if cfg.Export.Dir != "export" {
		t.Errorf("expected export dir 'export', got %s", cfg.Export.Dir)
	}
	if !cfg.Export.WorldSpace {
		t.Error("expected world-space export by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
data:
  crf_paths:
    - obj.crf
    - mesh.crf
  texture_dirs:
    - fam

export:
  dir: out
  world_space: false

logging:
  level: debug
  log_file: darkmesh.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if len(cfg.Data.CRFPaths) != 2 || cfg.Data.CRFPaths[1] != "mesh.crf" {
		t.Errorf("crf_paths = %v", cfg.Data.CRFPaths)
	}
	if len(cfg.Data.TextureDirs) != 1 || cfg.Data.TextureDirs[0] != "fam" {
		t.Errorf("texture_dirs = %v", cfg.Data.TextureDirs)
	}
	if cfg.Export.Dir != "out" {
		t.Errorf("export dir = %s, want out", cfg.Export.Dir)
	}
	if cfg.Export.WorldSpace {
		t.Error("world_space should be overridden to false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "darkmesh.log" {
		t.Errorf("log file = %s, want darkmesh.log", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile_PartialMerge(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
logging:
  level: warn
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("log level = %s, want warn", cfg.Logging.Level)
	}

	// Untouched sections keep their defaults
	if len(cfg.Data.CRFPaths) != 1 || cfg.Data.CRFPaths[0] != "obj.crf" {
		t.Errorf("crf_paths = %v, want default", cfg.Data.CRFPaths)
	}
	if cfg.Export.Dir != "export" {
		t.Errorf("export dir = %s, want default", cfg.Export.Dir)
	}
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte(":\n  - ]["), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if err := loadFromFile(Default(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyFlags(t *testing.T) {
	origDebug := *flagDebug
	origArchive := *flagArchive
	origExport := *flagExport
	origLocal := *flagLocal
	defer func() {
		*flagDebug = origDebug
		*flagArchive = origArchive
		*flagExport = origExport
		*flagLocal = origLocal
	}()

	*flagDebug = true
	*flagArchive = "a.crf, b.crf"
	*flagExport = "dump"
	*flagLocal = true

	cfg := Default()
	applyFlags(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %s, want debug", cfg.Logging.Level)
	}
	if len(cfg.Data.CRFPaths) != 2 || cfg.Data.CRFPaths[0] != "a.crf" || cfg.Data.CRFPaths[1] != "b.crf" {
		t.Errorf("crf_paths = %v, want the flag archives", cfg.Data.CRFPaths)
	}
	if cfg.Export.Dir != "dump" {
		t.Errorf("export dir = %s, want dump", cfg.Export.Dir)
	}
	if cfg.Export.WorldSpace {
		t.Error("local flag should disable world-space export")
	}
}

func TestConfigDir(t *testing.T) {
	if dir := ConfigDir(); dir == "" {
		t.Error("ConfigDir returned empty path")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Data.CRFPaths = []string{"obj.crf", "mesh.crf"}
	cfg.Export.WorldSpace = false
	cfg.Logging.Level = "debug"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if len(loaded.Data.CRFPaths) != 2 || loaded.Data.CRFPaths[1] != "mesh.crf" {
		t.Errorf("expected saved archives back, got %v", loaded.Data.CRFPaths)
	}
	if loaded.Export.WorldSpace {
		t.Error("expected world_space false to survive the round trip")
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", loaded.Logging.Level)
	}
	if loaded.Export.Dir != cfg.Export.Dir {
		t.Errorf("expected export dir %s, got %s", cfg.Export.Dir, loaded.Export.Dir)
	}
}
