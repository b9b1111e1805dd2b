// Package config provides TOML configuration for the training service
// binaries.
package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
	UploadDir      string   `toml:"upload_dir"`
}

// EngineConfig holds the training engine settings.
type EngineConfig struct {
	ModelDir        string `toml:"model_dir"`
	Workers         int    `toml:"workers"`
	IterationMillis int    `toml:"iteration_millis"`
}

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Engine EngineConfig `toml:"engine"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
			UploadDir:      "uploads",
		},
		Engine: EngineConfig{
			ModelDir:        "models",
			Workers:         4,
			IterationMillis: 300,
		},
	}
}

// Load reads a TOML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
