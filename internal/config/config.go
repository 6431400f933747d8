package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "banknote.yaml"

// Config represents the top-level banknote.yaml configuration.
type Config struct {
	DataDir      string        `yaml:"data_dir"`
	HomeCurrency string        `yaml:"home_currency"`
	DefaultRate  string        `yaml:"default_rate"`
	Company      CompanyConfig `yaml:"company"`
	Log          LogConfig     `yaml:"log"`
}

// CompanyConfig carries the defaults written into fresh settings.
type CompanyConfig struct {
	Name   string `yaml:"name"`
	Period string `yaml:"period"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads a banknote.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new book.
func Default(companyName, period string) *Config {
	return &Config{
		DataDir:      ".",
		HomeCurrency: "HKD",
		DefaultRate:  "7.79",
		Company: CompanyConfig{
			Name:   companyName,
			Period: period,
		},
		Log: LogConfig{Level: "info"},
	}
}
