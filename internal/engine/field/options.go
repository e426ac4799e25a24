package field

// Format identifies the textual format of content passed to ApplyText.
type Format int

const (
	// FormatLatex is the compact LaTeX subset of the expr package.
	FormatLatex Format = iota
)

// Mode identifies the editing mode content is interpreted in.
type Mode int

const (
	// ModeMath interprets content as a math expression.
	ModeMath Mode = iota

	// ModeText interprets content as literal text symbols.
	ModeText
)

// InsertionMode controls where ApplyText places content.
type InsertionMode int

const (
	// InsertReplaceAll replaces the entire document content.
	InsertReplaceAll InsertionMode = iota

	// InsertAtSelection splices content at the selection head.
	InsertAtSelection
)

// SelectionMode controls where the selection lands after ApplyText.
type SelectionMode int

const (
	// SelectAfter collapses the selection after the inserted content.
	SelectAfter SelectionMode = iota

	// SelectStart collapses the selection at the start of the document.
	SelectStart

	// SelectAll selects the inserted content.
	SelectAll
)

// ApplyOptions configures a single ApplyText call.
type ApplyOptions struct {
	Format        Format
	Mode          Mode
	InsertionMode InsertionMode
	SelectionMode SelectionMode

	// SmartFence enables automatic closing of unbalanced fences. It must
	// be disabled when re-materializing previously serialized state.
	SmartFence bool

	// SuppressChangeNotifications, when non-nil, overrides the field's
	// suppress flag for this call only.
	SuppressChangeNotifications *bool
}

// Option is a functional option for configuring a Field.
type Option func(*Field)

// WithNotifier attaches a change notifier to the field.
func WithNotifier(n Publisher) Option {
	return func(f *Field) {
		f.notifier = n
	}
}

// WithSmartFence enables smart-fence behavior for interactive edits.
func WithSmartFence(enabled bool) Option {
	return func(f *Field) {
		f.smartFence = enabled
	}
}
