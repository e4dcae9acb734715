// Package config loads evaluation settings from YAML or JSON files.
package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xdanny/strands-eval/pkg/rules"
)

const (
	// DefaultThreshold is the pass bar applied to aggregate scores of
	// externally judged metrics. The efficiency check's own pass bar is
	// fixed and not configurable here.
	DefaultThreshold = 0.7

	// DefaultWorkers is the batch evaluation concurrency.
	DefaultWorkers = 4
)

// Config holds the evaluation settings.
type Config struct {
	// Threshold gates the aggregate score of a test case in [0,1].
	Threshold float64 `yaml:"threshold" json:"threshold"`

	// Workers is the number of concurrent evaluation workers.
	Workers int `yaml:"workers" json:"workers"`

	// DisabledRules lists efficiency rule ids to skip.
	DisabledRules []string `yaml:"disabled_rules" json:"disabled_rules"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Threshold: DefaultThreshold,
		Workers:   DefaultWorkers,
	}
}

// LoadFromFile loads configuration from a YAML or JSON file. Unset fields
// fall back to defaults.
func LoadFromFile(filename string) (*Config, error) {
	slog.Debug("loading config", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", filename)
	}

	cfg := &Config{}
	if yamlErr := yaml.Unmarshal(data, cfg); yamlErr != nil {
		slog.Debug("YAML unmarshal failed, trying JSON", "error", yamlErr)
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, errors.Wrapf(jsonErr, "config file %s is neither valid YAML nor JSON", filename)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("loaded config", "threshold", cfg.Threshold, "workers", cfg.Workers,
		"disabled_rules", len(cfg.DisabledRules))
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.Errorf("threshold %v out of range [0,1]", c.Threshold)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// RuleSet returns the efficiency rule set with the disabled rules removed.
func (c *Config) RuleSet() []rules.Rule {
	ids := make([]rules.ID, 0, len(c.DisabledRules))
	for _, s := range c.DisabledRules {
		ids = append(ids, rules.ID(s))
	}
	return rules.DefaultExcept(ids...)
}
