package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.History.MaxDepth != 1000 {
		t.Errorf("MaxDepth = %d, want 1000", cfg.History.MaxDepth)
	}
	if !cfg.History.CoalesceBursts {
		t.Error("CoalesceBursts should default to true")
	}
	if !cfg.Field.SmartFence {
		t.Error("SmartFence should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileIsNotError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.History.MaxDepth != 1000 {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathcore.toml")
	content := `
[history]
max-depth = 50
coalesce-bursts = false

[field]
smart-fence = false

[hooks]
manifest = "hooks.yaml"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.History.MaxDepth != 50 {
		t.Errorf("MaxDepth = %d, want 50", cfg.History.MaxDepth)
	}
	if cfg.History.CoalesceBursts {
		t.Error("CoalesceBursts should be false")
	}
	if cfg.Field.SmartFence {
		t.Error("SmartFence should be false")
	}
	if cfg.Hooks.Manifest != "hooks.yaml" {
		t.Errorf("Manifest = %q", cfg.Hooks.Manifest)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[history\nmax-depth ="), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("got %v, want ParseError", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MATHCORE_HISTORY_MAX_DEPTH", "25")
	t.Setenv("MATHCORE_FIELD_SMART_FENCE", "false")
	t.Setenv("MATHCORE_HOOKS_MANIFEST", "custom.yaml")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.History.MaxDepth != 25 {
		t.Errorf("MaxDepth = %d, want 25", cfg.History.MaxDepth)
	}
	if cfg.Field.SmartFence {
		t.Error("SmartFence override not applied")
	}
	if cfg.Hooks.Manifest != "custom.yaml" {
		t.Errorf("Manifest = %q", cfg.Hooks.Manifest)
	}
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("MATHCORE_HISTORY_MAX_DEPTH", "many")

	if _, err := Load(""); !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.History.MaxDepth = 0

	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want ErrInvalid", err)
	}
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mathcore.toml")
	if err := os.WriteFile(path, []byte("[history]\nmax-depth = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var got []Config
	w, err := Watch(path, func(cfg Config, err error) {
		if err != nil {
			t.Errorf("reload error: %v", err)
			return
		}
		mu.Lock()
		got = append(got, cfg)
		mu.Unlock()
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[history]\nmax-depth = 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) == 0 {
		t.Fatal("no reload observed")
	}
	if got[len(got)-1].History.MaxDepth != 20 {
		t.Errorf("reloaded MaxDepth = %d, want 20", got[len(got)-1].History.MaxDepth)
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mathcore.toml")

	w, err := Watch(path, func(Config, error) {})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	w.Close()
	w.Close()
}
