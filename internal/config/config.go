// Package config loads the pipeline configuration from .estlens/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"estlens/internal/errors"
)

// Config represents the complete estlens configuration.
type Config struct {
	Version int    `json:"version" mapstructure:"version"`
	Root    string `json:"root" mapstructure:"root"`

	Inputs    InputsConfig    `json:"inputs" mapstructure:"inputs"`
	Output    OutputConfig    `json:"output" mapstructure:"output"`
	Aliases   AliasesConfig   `json:"aliases" mapstructure:"aliases"`
	Histogram HistogramConfig `json:"histogram" mapstructure:"histogram"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// InputsConfig locates the input snapshot.
type InputsConfig struct {
	// Source selects where the snapshot is loaded from: "json" reads the
	// extraction pipeline's files from Dir, "sqlite" reads the imported
	// snapshot store.
	Source      string `json:"source" mapstructure:"source"`
	Dir         string `json:"dir" mapstructure:"dir"`
	MasterIndex string `json:"masterIndex" mapstructure:"masterIndex"`
	RateCard    string `json:"rateCard" mapstructure:"rateCard"`
}

// OutputConfig controls artifact emission.
type OutputConfig struct {
	Dir      string `json:"dir" mapstructure:"dir"`
	Pretty   bool   `json:"pretty" mapstructure:"pretty"`
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// AliasesConfig points at an optional manager alias table override.
type AliasesConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// HistogramConfig points at an optional range declaration override.
type HistogramConfig struct {
	RangesPath string `json:"rangesPath" mapstructure:"rangesPath"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Root:    ".",
		Inputs: InputsConfig{
			Source:      "json",
			Dir:         ".",
			MasterIndex: "enriched_master_index.json",
			RateCard:    "rate_card_master.json",
		},
		Output: OutputConfig{
			Dir: "data",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.estlens/config.json. A missing
// file yields the defaults.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("root", ".")
	v.SetDefault("inputs.source", "json")
	v.SetDefault("inputs.dir", ".")
	v.SetDefault("inputs.masterIndex", "enriched_master_index.json")
	v.SetDefault("inputs.rateCard", "rate_card_master.json")
	v.SetDefault("output.dir", "data")
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".estlens"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, errors.New(errors.ConfigInvalid, "unable to read config", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "unable to decode config", err)
	}

	return &cfg, nil
}

// Save writes the configuration to <root>/.estlens/config.json.
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".estlens")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return errors.New(errors.ConfigInvalid, "unsupported config version", nil)
	}
	if c.Inputs.Source != "json" && c.Inputs.Source != "sqlite" {
		return errors.New(errors.ConfigInvalid, "inputs.source must be json or sqlite", nil)
	}
	if c.Output.Dir == "" {
		return errors.New(errors.ConfigInvalid, "output.dir must be set", nil)
	}
	return nil
}
