package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brettbedarf/foldertree/internal/util"
	"github.com/brettbedarf/foldertree/pathutil"
	"gopkg.in/yaml.v3"
)

// Config contains runtime configuration values for a folder tree and its tooling.
type Config struct {
	LogLvl        util.LogLevel `validate:"min=0,max=4"`                  // Internal log level (Default info)
	MaxPathLength int           `validate:"min=1"`                        // Longest accepted path in bytes (Default 4095)
	MaxNameLength int           `validate:"min=1,ltefield=MaxPathLength"` // Longest accepted folder name (Default 255)
	Metrics       bool          // Whether to collect Prometheus metrics (Default false)
	Stress        StressConfig  // Settings for the stress runner
}

// StressConfig controls a randomized stress run against a tree.
type StressConfig struct {
	Workers      int           `validate:"min=1,max=1024"` // Concurrent goroutines (Default 8)
	OpsPerWorker int           `validate:"min=1"`          // Operations each goroutine runs (Default 5000)
	Seed         int           `validate:"min=0"`          // Base seed; worker i uses Seed+i (Default 100)
	Mask         int           `validate:"min=1,max=15"`   // Bitmask of operation kinds to generate (Default 15)
	Timeout      time.Duration `validate:"gt=0"`           // Bound after which the run counts as deadlocked (Default 30s)
}

// Limits returns the path limits the tree validates against.
func (c *Config) Limits() pathutil.Limits {
	return pathutil.Limits{
		MaxPathLength: c.MaxPathLength,
		MaxNameLength: c.MaxNameLength,
	}
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
//
// NOTE: LogLvl is a CLI verbosity between 1 (error) and 5 (trace), not a [util.LogLevel]
type ConfigOverride struct {
	LogLvl        *int            `yaml:"log_lvl,omitempty" json:"log_lvl,omitempty" mapstructure:"log_lvl"`
	MaxPathLength *int            `yaml:"max_path_length,omitempty" json:"max_path_length,omitempty" mapstructure:"max_path_length"`
	MaxNameLength *int            `yaml:"max_name_length,omitempty" json:"max_name_length,omitempty" mapstructure:"max_name_length"`
	Metrics       *bool           `yaml:"metrics,omitempty" json:"metrics,omitempty" mapstructure:"metrics"`
	Stress        *StressOverride `yaml:"stress,omitempty" json:"stress,omitempty" mapstructure:"stress"`
}

// StressOverride is the partial form of [StressConfig].
type StressOverride struct {
	Workers      *int           `yaml:"workers,omitempty" json:"workers,omitempty" mapstructure:"workers"`
	OpsPerWorker *int           `yaml:"ops_per_worker,omitempty" json:"ops_per_worker,omitempty" mapstructure:"ops_per_worker"`
	Seed         *int           `yaml:"seed,omitempty" json:"seed,omitempty" mapstructure:"seed"`
	Mask         *int           `yaml:"mask,omitempty" json:"mask,omitempty" mapstructure:"mask"`
	Timeout      *time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty" mapstructure:"timeout"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:        DefaultLogLvl,
		MaxPathLength: DefaultMaxPathLength,
		MaxNameLength: DefaultMaxNameLength,
		Metrics:       DefaultMetrics,
		Stress: StressConfig{
			Workers:      DefaultStressWorkers,
			OpsPerWorker: DefaultStressOpsPerWorker,
			Seed:         DefaultStressSeed,
			Mask:         DefaultStressMask,
			Timeout:      DefaultStressTimeout,
		},
	}
}

// NewConfig returns the defaults with override applied. A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = util.LevelFromVerbosity(*override.LogLvl)
	}
	if override.MaxPathLength != nil {
		c.MaxPathLength = *override.MaxPathLength
	}
	if override.MaxNameLength != nil {
		c.MaxNameLength = *override.MaxNameLength
	}
	if override.Metrics != nil {
		c.Metrics = *override.Metrics
	}
	if override.Stress != nil {
		c.Stress.merge(override.Stress)
	}
}

func (s *StressConfig) merge(override *StressOverride) {
	if override.Workers != nil {
		s.Workers = *override.Workers
	}
	if override.OpsPerWorker != nil {
		s.OpsPerWorker = *override.OpsPerWorker
	}
	if override.Seed != nil {
		s.Seed = *override.Seed
	}
	if override.Mask != nil {
		s.Mask = *override.Mask
	}
	if override.Timeout != nil {
		s.Timeout = *override.Timeout
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}
