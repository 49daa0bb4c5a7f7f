// Package config loads the YAML client configuration consumed by the CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sleepstars/modelkit/internal/logger"
	"github.com/sleepstars/modelkit/models"
)

// ClientConfig describes one client: where to reach the API, how to
// authenticate, which model to use and the default generation parameters
// merged into prompt calls.
type ClientConfig struct {
	APIBase  string                  `yaml:"api_base,omitempty"`
	APIKey   string                  `yaml:"api_key,omitempty"`
	KeyFile  string                  `yaml:"key_file,omitempty"`
	Model    string                  `yaml:"model"`
	Defaults models.CompletionParams `yaml:"defaults,omitempty"`
	Log      LogConfig               `yaml:"log,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string             `yaml:"level,omitempty"`
	File  *logger.FileConfig `yaml:"file,omitempty"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg ClientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("config %s: model is required", path)
	}
	return &cfg, nil
}
