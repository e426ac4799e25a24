package history

import "sync"

// DefaultMaxDepth bounds the history stack when no depth is given.
const DefaultMaxDepth = 1000

// Manager maintains a bounded, linear sequence of document snapshots and a
// cursor into it. It lives exactly as long as the document it instruments.
type Manager struct {
	mu sync.Mutex

	doc Document

	entries []Snapshot
	cursor  int // -1 when empty

	maxDepth        int
	recording       bool
	coalescePending bool
}

// NewManager creates a history manager for doc. A maxDepth of zero or less
// selects DefaultMaxDepth.
func NewManager(doc Document, maxDepth int) *Manager {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Manager{
		doc:      doc,
		cursor:   -1,
		maxDepth: maxDepth,
	}
}

// Reset clears the history stack. It has no effect on the document and is
// idempotent. The recording latch is unaffected.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	m.cursor = -1
}

// StartRecording arms the history. Before the first call, Snapshot is a
// no-op. The latch is one-way: there is no stop.
func (m *Manager) StartRecording() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recording = true
}

// Recording reports whether the history has been armed.
func (m *Manager) Recording() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recording
}

// CanUndo reports whether a step backward is available. Index 0, when
// present, is the floor state at which recording began and is not itself
// undoable.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor > 0
}

// CanRedo reports whether a step forward is available.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor < len(m.entries)-1
}

// Depth returns the number of recorded entries.
func (m *Manager) Depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Cursor returns the current position in history, or -1 when empty.
func (m *Manager) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// MaxDepth returns the fixed bound on the stack depth.
func (m *Manager) MaxDepth() int {
	return m.maxDepth
}

// Snapshot records the current document state as a new entry. The redo
// region is permanently discarded, the new entry becomes current, and the
// oldest entry is evicted once the stack exceeds its bound.
func (m *Manager) Snapshot(hooks Hooks) {
	m.mu.Lock()
	if !m.recording {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	invokeBefore(hooks, TransitionSnapshot)

	m.mu.Lock()
	m.entries = m.entries[:m.cursor+1]
	m.mu.Unlock()

	snap := m.Save()

	m.mu.Lock()
	m.entries = append(m.entries, snap)
	m.cursor++
	if len(m.entries) > m.maxDepth {
		m.entries = m.entries[1:]
		m.cursor--
	}
	m.mu.Unlock()

	invokeAfter(hooks, TransitionSnapshot)

	m.mu.Lock()
	m.coalescePending = false
	m.mu.Unlock()
}

// SnapshotAndCoalesce records the current state, replacing the previous
// entry when the preceding call was also a coalescing one. Repeated calls
// with no intervening plain Snapshot retain only the latest state as a
// single history entry.
func (m *Manager) SnapshotAndCoalesce(hooks Hooks) {
	m.mu.Lock()
	pending := m.coalescePending
	m.mu.Unlock()

	if pending {
		m.Pop()
	}
	m.Snapshot(hooks)

	m.mu.Lock()
	m.coalescePending = true
	m.mu.Unlock()
}

// Pop discards the most recent entry and moves the cursor back by one.
// No-op unless CanUndo. It is a half-step exposed for tests and for
// coalescing; SnapshotAndCoalesce is its only production caller.
func (m *Manager) Pop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor <= 0 {
		return
	}
	m.cursor--
	m.entries = m.entries[:len(m.entries)-1]
}

// Undo restores the previous entry and steps the cursor back. Silent no-op
// when nothing can be undone. When the document fails to apply the entry,
// the cursor does not move and the failure propagates.
func (m *Manager) Undo(hooks Hooks) error {
	m.mu.Lock()
	if m.cursor <= 0 {
		m.mu.Unlock()
		return nil
	}
	target := m.entries[m.cursor-1]
	m.mu.Unlock()

	invokeBefore(hooks, TransitionUndo)

	if err := m.Restore(&target, RestoreOptions{}); err != nil {
		return err
	}

	m.mu.Lock()
	m.cursor--
	m.mu.Unlock()

	invokeAfter(hooks, TransitionUndo)

	m.mu.Lock()
	m.coalescePending = false
	m.mu.Unlock()
	return nil
}

// Redo restores the next entry and steps the cursor forward. Silent no-op
// when nothing can be redone. When the document fails to apply the entry,
// the cursor does not move and the failure propagates.
func (m *Manager) Redo(hooks Hooks) error {
	m.mu.Lock()
	if m.cursor >= len(m.entries)-1 {
		m.mu.Unlock()
		return nil
	}
	target := m.entries[m.cursor+1]
	m.mu.Unlock()

	invokeBefore(hooks, TransitionRedo)

	if err := m.Restore(&target, RestoreOptions{}); err != nil {
		return err
	}

	m.mu.Lock()
	m.cursor++
	m.mu.Unlock()

	invokeAfter(hooks, TransitionRedo)

	m.mu.Lock()
	m.coalescePending = false
	m.mu.Unlock()
	return nil
}
