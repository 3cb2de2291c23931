package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gruntwork-io/go-commons/errors"
	"gopkg.in/yaml.v3"
)

// Load reads settings from path over the defaults. A missing file leaves the
// defaults in place. The format follows the extension and falls back to TOML.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.WithStackTrace(fmt.Errorf("read config: %w", err))
	}
	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode decodes data in the format named by ext into cfg.
func Decode(data []byte, ext string, cfg *Config) error {
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode TOML: %w", err)
		}
	}
	return nil
}
