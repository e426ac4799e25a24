package history

import (
	"errors"
	"fmt"

	"github.com/dmillard/mathcore/internal/engine/field"
)

// ErrInvalidSnapshot indicates a snapshot the document could not apply.
// Snapshots produced by this package always apply cleanly; the error
// surfaces only for externally constructed snapshots.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is an immutable capture of full document state: the complete
// serialized content and the complete serialized selection. Snapshots are
// opaque full-state captures, not deltas.
type Snapshot struct {
	Content   string
	Selection string
}

// Document is the adapter surface the history manager consumes.
// *field.Field satisfies it.
type Document interface {
	// Serialize returns the full document content in textual form.
	Serialize() string

	// SerializeSelection returns the full selection in textual form.
	SerializeSelection() string

	// ApplyText applies textual content to the document.
	ApplyText(text string, opts field.ApplyOptions) error

	// ApplySelection applies a serialized selection.
	ApplySelection(path string) error

	// SuppressNotifications reports the document's suppress flag.
	SuppressNotifications() bool

	// SetSuppressNotifications sets the document's suppress flag.
	SetSuppressNotifications(suppress bool)
}

// RestoreOptions configures a Restore call.
type RestoreOptions struct {
	// SuppressChangeNotifications, when non-nil, overrides the document's
	// suppress flag for the duration of the restore. The prior value is
	// reinstated on every exit path, including failures.
	SuppressChangeNotifications *bool
}

// Save captures the current document state. It is read-only with respect
// to the history stack.
func (m *Manager) Save() Snapshot {
	return Snapshot{
		Content:   m.doc.Serialize(),
		Selection: m.doc.SerializeSelection(),
	}
}

// Restore applies a snapshot to the document without touching the history
// stack. A nil snapshot means an empty document with the selection at the
// document root. Content is applied as a full-document replacement with
// smart fences disabled: the snapshot is a faithful re-materialization of
// prior state and must not be reinterpreted.
func (m *Manager) Restore(snap *Snapshot, opts RestoreOptions) error {
	prev := m.doc.SuppressNotifications()
	if opts.SuppressChangeNotifications != nil {
		m.doc.SetSuppressNotifications(*opts.SuppressChangeNotifications)
	}
	defer m.doc.SetSuppressNotifications(prev)

	var content, selection string
	if snap != nil {
		content = snap.Content
		selection = snap.Selection
	} else {
		selection = field.EncodeSelection(field.RootSelection())
	}

	applyOpts := field.ApplyOptions{
		Format:                      field.FormatLatex,
		Mode:                        field.ModeMath,
		InsertionMode:               field.InsertReplaceAll,
		SelectionMode:               field.SelectAfter,
		SmartFence:                  false,
		SuppressChangeNotifications: opts.SuppressChangeNotifications,
	}
	if err := m.doc.ApplyText(content, applyOpts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := m.doc.ApplySelection(selection); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return nil
}
