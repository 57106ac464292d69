// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Interval != 5*time.Second {
		t.Errorf("Interval = %v, want 5s", cfg.Interval)
	}
	if cfg.OutputPath != "data.json" {
		t.Errorf("OutputPath = %q, want data.json", cfg.OutputPath)
	}
	if cfg.StateDir == "" {
		t.Error("StateDir is empty")
	}
	if cfg.ListenAddr != "" {
		t.Errorf("ListenAddr = %q, want empty", cfg.ListenAddr)
	}
	if cfg.CheckpointPath() != filepath.Join(cfg.StateDir, "checkpoint.db") {
		t.Errorf("CheckpointPath = %q", cfg.CheckpointPath())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "barograph.yaml")
	content := []byte(`
interval: 30s
state_dir: /var/lib/barograph
output_path: /srv/monitor/data.json
listen_addr: ":8080"
hostname: "test-host"
collect_threads: true
`)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Interval != 30*time.Second {
		t.Errorf("Interval = %v, want 30s", cfg.Interval)
	}
	if cfg.StateDir != "/var/lib/barograph" {
		t.Errorf("StateDir = %q, want /var/lib/barograph", cfg.StateDir)
	}
	if cfg.OutputPath != "/srv/monitor/data.json" {
		t.Errorf("OutputPath = %q, want /srv/monitor/data.json", cfg.OutputPath)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.Hostname != "test-host" {
		t.Errorf("Hostname = %q, want test-host", cfg.Hostname)
	}
	if !cfg.CollectThreads {
		t.Error("CollectThreads = false, want true")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "barograph.yaml")
	content := []byte(`
hostname: "from-file"
output_path: /tmp/from-file.json
`)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BAROGRAPH_HOSTNAME", "from-env")
	t.Setenv("BAROGRAPH_OUTPUT", "/tmp/from-env.json")
	t.Setenv("BAROGRAPH_STATE_DIR", "/tmp/env-state")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Hostname != "from-env" {
		t.Errorf("Hostname = %q, want from-env", cfg.Hostname)
	}
	if cfg.OutputPath != "/tmp/from-env.json" {
		t.Errorf("OutputPath = %q, want /tmp/from-env.json", cfg.OutputPath)
	}
	if cfg.StateDir != "/tmp/env-state" {
		t.Errorf("StateDir = %q, want /tmp/env-state", cfg.StateDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of a named missing file did not fail")
	}
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(configPath, []byte("interval: [not a duration"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load of invalid YAML did not fail")
	}
}
