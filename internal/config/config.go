// internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config for the barograph monitor
type Config struct {
	Interval       time.Duration `yaml:"interval"`
	StateDir       string        `yaml:"state_dir"`
	OutputPath     string        `yaml:"output_path"`
	ListenAddr     string        `yaml:"listen_addr"`
	Hostname       string        `yaml:"hostname"`
	CollectThreads bool          `yaml:"collect_threads"`
}

// Load reads config from a YAML file with env overrides. An empty path
// means no file; defaults fill whatever is left unset.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	// Env overrides
	if hostname := os.Getenv("BAROGRAPH_HOSTNAME"); hostname != "" {
		cfg.Hostname = hostname
	}
	if dir := os.Getenv("BAROGRAPH_STATE_DIR"); dir != "" {
		cfg.StateDir = dir
	}
	if out := os.Getenv("BAROGRAPH_OUTPUT"); out != "" {
		cfg.OutputPath = out
	}

	// Defaults
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.StateDir == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			cacheDir = "."
		}
		cfg.StateDir = filepath.Join(cacheDir, "barograph")
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "data.json"
	}
	if cfg.Hostname == "" {
		cfg.Hostname, _ = os.Hostname()
	}

	return &cfg, nil
}

// CheckpointPath returns the checkpoint database location under the
// state directory.
func (c *Config) CheckpointPath() string {
	return filepath.Join(c.StateDir, "checkpoint.db")
}
