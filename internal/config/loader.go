package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "MATHCORE_"

// Load builds the effective configuration: defaults, then the TOML file at
// path (a missing file is not an error; an empty path skips the file
// entirely), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, not an error
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// applyEnv overrides settings from MATHCORE_* environment variables.
// Empty string values are treated as valid values, not as unset.
func applyEnv(cfg *Config) error {
	if val, ok := os.LookupEnv(EnvPrefix + "HISTORY_MAX_DEPTH"); ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%w: %sHISTORY_MAX_DEPTH: %v", ErrInvalid, EnvPrefix, err)
		}
		cfg.History.MaxDepth = n
	}
	if val, ok := os.LookupEnv(EnvPrefix + "HISTORY_COALESCE"); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%w: %sHISTORY_COALESCE: %v", ErrInvalid, EnvPrefix, err)
		}
		cfg.History.CoalesceBursts = b
	}
	if val, ok := os.LookupEnv(EnvPrefix + "FIELD_SMART_FENCE"); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%w: %sFIELD_SMART_FENCE: %v", ErrInvalid, EnvPrefix, err)
		}
		cfg.Field.SmartFence = b
	}
	if val, ok := os.LookupEnv(EnvPrefix + "HOOKS_MANIFEST"); ok {
		cfg.Hooks.Manifest = val
	}
	return nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
