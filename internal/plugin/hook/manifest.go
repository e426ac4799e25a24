package hook

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrManifest indicates a malformed hook manifest.
var ErrManifest = errors.New("invalid hook manifest")

// Manifest declares the hook scripts to load.
type Manifest struct {
	Hooks []Entry `yaml:"hooks"`
}

// Entry declares a single hook script.
type Entry struct {
	// Script is the path to a Lua file, relative to the manifest.
	Script string `yaml:"script"`

	// Events lists the transition kinds the script observes
	// ("undo", "redo", "snapshot"). Empty means all.
	Events []string `yaml:"events"`
}

// LoadManifest reads and validates a YAML hook manifest.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest parses and validates manifest data.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrManifest, err)
	}

	for i, entry := range m.Hooks {
		if entry.Script == "" {
			return Manifest{}, fmt.Errorf("%w: hook %d has no script", ErrManifest, i)
		}
		for _, ev := range entry.Events {
			if _, err := parseKind(ev); err != nil {
				return Manifest{}, fmt.Errorf("%w: hook %d: %v", ErrManifest, i, err)
			}
		}
	}
	return m, nil
}
