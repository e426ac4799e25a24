package hook

import (
	"fmt"
	"path/filepath"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dmillard/mathcore/internal/engine/history"
)

const (
	beforeFn = "before_transition"
	afterFn  = "after_transition"
)

// ScriptHooks implements history.Hooks by dispatching transitions to Lua
// scripts. An LState is not goroutine-safe; all calls are serialized
// through a single mutex.
type ScriptHooks struct {
	mu      sync.Mutex
	scripts []*script
	errs    []error
}

var _ history.Hooks = (*ScriptHooks)(nil)

type script struct {
	name   string
	state  *lua.LState
	events map[history.TransitionKind]bool // nil means all
}

// Load creates hooks from a manifest. Script paths resolve relative to
// baseDir. A script that fails to load aborts the whole load; scripts
// already loaded are closed.
func Load(m Manifest, baseDir string) (*ScriptHooks, error) {
	h := &ScriptHooks{}
	for _, entry := range m.Hooks {
		path := entry.Script
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		L := lua.NewState()
		if err := L.DoFile(path); err != nil {
			L.Close()
			h.Close()
			return nil, fmt.Errorf("loading hook script %s: %w", path, err)
		}

		events, err := eventSet(entry.Events)
		if err != nil {
			L.Close()
			h.Close()
			return nil, err
		}

		h.scripts = append(h.scripts, &script{
			name:   entry.Script,
			state:  L,
			events: events,
		})
	}
	return h, nil
}

// LoadString creates hooks from inline Lua source, observing all kinds.
func LoadString(name, src string) (*ScriptHooks, error) {
	L := lua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading hook script %s: %w", name, err)
	}
	return &ScriptHooks{
		scripts: []*script{{name: name, state: L}},
	}, nil
}

// BeforeTransition dispatches to each script's before_transition function.
func (h *ScriptHooks) BeforeTransition(kind history.TransitionKind) {
	h.call(beforeFn, kind)
}

// AfterTransition dispatches to each script's after_transition function.
func (h *ScriptHooks) AfterTransition(kind history.TransitionKind) {
	h.call(afterFn, kind)
}

func (h *ScriptHooks) call(fn string, kind history.TransitionKind) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.scripts {
		if s.events != nil && !s.events[kind] {
			continue
		}
		f := s.state.GetGlobal(fn)
		if f == lua.LNil {
			continue
		}
		err := s.state.CallByParam(lua.P{
			Fn:      f,
			NRet:    0,
			Protect: true,
		}, lua.LString(kind.String()))
		if err != nil {
			h.errs = append(h.errs, fmt.Errorf("hook %s: %s: %w", s.name, fn, err))
		}
	}
}

// Errs returns errors raised by scripts since the last call, and clears
// the record.
func (h *ScriptHooks) Errs() []error {
	h.mu.Lock()
	defer h.mu.Unlock()

	errs := h.errs
	h.errs = nil
	return errs
}

// Close releases all Lua states. Idempotent.
func (h *ScriptHooks) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.scripts {
		s.state.Close()
	}
	h.scripts = nil
}

// parseKind maps a manifest event name to a transition kind.
func parseKind(name string) (history.TransitionKind, error) {
	switch name {
	case "undo":
		return history.TransitionUndo, nil
	case "redo":
		return history.TransitionRedo, nil
	case "snapshot":
		return history.TransitionSnapshot, nil
	default:
		return 0, fmt.Errorf("unknown event %q", name)
	}
}

func eventSet(names []string) (map[history.TransitionKind]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	set := make(map[history.TransitionKind]bool, len(names))
	for _, name := range names {
		kind, err := parseKind(name)
		if err != nil {
			return nil, err
		}
		set[kind] = true
	}
	return set, nil
}
