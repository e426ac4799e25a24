// Package hook provides Lua-scriptable lifecycle hooks for the history
// engine.
//
// Scripts are declared in a YAML manifest and may define two global
// functions:
//
//	function before_transition(kind) ... end
//	function after_transition(kind) ... end
//
// where kind is "undo", "redo", or "snapshot". Calls are synchronous and
// serialized; script errors are collected rather than propagated so a
// misbehaving hook cannot corrupt a history transition.
package hook
