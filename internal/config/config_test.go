package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Engine.Workers != 4 {
		t.Errorf("Expected default workers 4, got %d", cfg.Engine.Workers)
	}
	if cfg.Engine.ModelDir != "models" {
		t.Errorf("Expected default model dir %q, got %q", "models", cfg.Engine.ModelDir)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Expected defaults for empty path, got %+v", cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 9090

[engine]
workers = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Writing fixture failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected overridden port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Engine.Workers != 2 {
		t.Errorf("Expected overridden workers 2, got %d", cfg.Engine.Workers)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.UploadDir != "uploads" {
		t.Errorf("Expected default upload dir, got %q", cfg.Server.UploadDir)
	}
	if cfg.Engine.IterationMillis != 300 {
		t.Errorf("Expected default iteration millis, got %d", cfg.Engine.IterationMillis)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("this is not toml = ["), 0o644); err != nil {
		t.Fatalf("Writing fixture failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid TOML")
	}
}
