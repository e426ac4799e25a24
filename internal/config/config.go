// Package config provides configuration loading for mathcore.
//
// Configuration is read from an optional TOML file, then overridden by
// MATHCORE_* environment variables. A file watcher supports live reload.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid indicates a configuration that fails validation.
var ErrInvalid = errors.New("invalid configuration")

// HistoryConfig configures the undo/redo engine.
type HistoryConfig struct {
	// MaxDepth bounds the number of retained history entries.
	MaxDepth int `toml:"max-depth"`

	// CoalesceBursts collapses single-character insertions into one
	// history entry per typing burst.
	CoalesceBursts bool `toml:"coalesce-bursts"`
}

// FieldConfig configures the editable field.
type FieldConfig struct {
	// SmartFence auto-closes unbalanced fences during interactive edits.
	SmartFence bool `toml:"smart-fence"`
}

// HooksConfig configures lifecycle hook scripting.
type HooksConfig struct {
	// Manifest is the path to a YAML manifest of Lua hook scripts.
	// Empty disables hook scripting.
	Manifest string `toml:"manifest"`
}

// Config is the root configuration.
type Config struct {
	History HistoryConfig `toml:"history"`
	Field   FieldConfig   `toml:"field"`
	Hooks   HooksConfig   `toml:"hooks"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			MaxDepth:       1000,
			CoalesceBursts: true,
		},
		Field: FieldConfig{
			SmartFence: true,
		},
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.History.MaxDepth <= 0 {
		return fmt.Errorf("%w: history.max-depth must be positive, got %d", ErrInvalid, c.History.MaxDepth)
	}
	return nil
}
