package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultConfigName is the file name (without extension) Load searches for
// in the working directory when no path is given.
const DefaultConfigName = "foldertree"

// configExts are tried in order when searching for DefaultConfigName.
var configExts = []string{".yaml", ".yml", ".json"}

// envKeys are the settings that may come from FOLDERTREE_* environment variables.
// Nested keys use an underscore, e.g. FOLDERTREE_STRESS_WORKERS.
var envKeys = []string{
	"log_lvl",
	"max_path_length",
	"max_name_length",
	"metrics",
	"stress.workers",
	"stress.ops_per_worker",
	"stress.seed",
	"stress.mask",
	"stress.timeout",
}

// Load builds a validated Config from defaults, an optional config file and
// FOLDERTREE_* environment variables, in increasing order of precedence.
//
// With an empty path, ./foldertree.{yaml,yml,json} is used if present.
func Load(path string) (*Config, error) {
	if path == "" {
		path = findConfigFile()
	}

	cfg := NewDefaultConfig()
	if path != "" {
		fileOverride, err := LoadConfigOverrideFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		cfg.Merge(fileOverride)
	}

	envOverride, err := loadEnvOverride()
	if err != nil {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}
	cfg.Merge(envOverride)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first DefaultConfigName file in the working
// directory, or "" if there is none.
func findConfigFile() string {
	for _, ext := range configExts {
		name := DefaultConfigName + ext
		// present but unreadable still counts, so the load reports it
		if _, err := os.Stat(name); !errors.Is(err, fs.ErrNotExist) {
			return name
		}
	}
	return ""
}

// loadEnvOverride collects the FOLDERTREE_* variables that are set.
func loadEnvOverride() (*ConfigOverride, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		// BindEnv only errors without a key
		_ = v.BindEnv(key)
	}
	return decodeOverride(v.AllSettings())
}

// decodeOverride turns viper's settings map into a ConfigOverride. Environment
// values arrive as strings, so input is weakly typed and durations are parsed.
func decodeOverride(settings map[string]any) (*ConfigOverride, error) {
	var override ConfigOverride
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &override,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, err
	}
	return &override, nil
}
