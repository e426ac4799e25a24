package field

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmillard/mathcore/internal/engine/expr"
	"github.com/dmillard/mathcore/internal/notify"
)

// ErrInvalidContent indicates content that cannot be applied to the field.
var ErrInvalidContent = errors.New("invalid content")

// Publisher receives change notifications from a field.
type Publisher interface {
	Notify(change notify.Change)
}

// Field is an editable math expression with a selection.
// All mutation bumps the revision ID and publishes a change notification
// unless notifications are suppressed.
type Field struct {
	mu sync.Mutex

	root expr.Row
	sel  Selection

	suppress bool
	revision uuid.UUID

	notifier   Publisher
	smartFence bool
}

// New creates an empty field with the selection at the document root.
func New(opts ...Option) *Field {
	f := &Field{
		root:     expr.Row{},
		sel:      RootSelection(),
		revision: uuid.New(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Serialize returns the full document content in textual form.
func (f *Field) Serialize() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return expr.Serialize(f.root)
}

// SerializeSelection returns the selection in its JSON form.
func (f *Field) SerializeSelection() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return EncodeSelection(f.sel)
}

// Selection returns a copy of the current selection.
func (f *Field) Selection() Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sel.Clone()
}

// Revision returns the ID of the current document revision.
func (f *Field) Revision() uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revision
}

// SuppressNotifications reports whether change notifications are suppressed.
func (f *Field) SuppressNotifications() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suppress
}

// SetSuppressNotifications sets the suppress flag.
func (f *Field) SetSuppressNotifications(suppress bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suppress = suppress
}

// ApplyText applies textual content to the field per opts.
// With InsertReplaceAll the entire document is replaced; with
// InsertAtSelection the content is spliced at the selection head.
func (f *Field) ApplyText(text string, opts ApplyOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if opts.SmartFence && f.smartFence {
		text = balanceFences(text)
	}

	row, err := f.parse(text, opts.Mode)
	if err != nil {
		return err
	}

	old := expr.Serialize(f.root)

	switch opts.InsertionMode {
	case InsertAtSelection:
		if err := f.spliceAtHead(row); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
	default: // InsertReplaceAll
		f.root = row
	}

	switch opts.SelectionMode {
	case SelectStart:
		f.sel = RootSelection()
	case SelectAll:
		f.sel = Selection{Anchor: expr.RootPath(), Head: expr.EndPath(f.root)}
	default: // SelectAfter
		if opts.InsertionMode != InsertAtSelection {
			end := expr.EndPath(f.root)
			f.sel = Selection{Anchor: end, Head: end.Clone()}
		}
		// InsertAtSelection already collapsed the selection after the
		// spliced content.
	}

	f.revision = uuid.New()
	f.publishLocked(notify.ChangeContent, old, expr.Serialize(f.root), opts.SuppressChangeNotifications, "apply-text")
	return nil
}

// ApplySelection applies a serialized selection, validating both paths
// against the current expression.
func (f *Field) ApplySelection(data string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sel, err := DecodeSelection(data)
	if err != nil {
		return err
	}
	if _, err := expr.Resolve(f.root, sel.Anchor); err != nil {
		return fmt.Errorf("%w: anchor: %v", ErrInvalidSelection, err)
	}
	if _, err := expr.Resolve(f.root, sel.Head); err != nil {
		return fmt.Errorf("%w: head: %v", ErrInvalidSelection, err)
	}

	old := EncodeSelection(f.sel)
	f.sel = sel
	f.publishLocked(notify.ChangeSelection, old, data, nil, "apply-selection")
	return nil
}

// Insert splices textual content at the selection head, for interactive
// editing. The selection collapses after the inserted content.
func (f *Field) Insert(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.smartFence {
		text = balanceFences(text)
	}
	row, err := f.parse(text, ModeMath)
	if err != nil {
		return err
	}

	old := expr.Serialize(f.root)
	if err := f.spliceAtHead(row); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	f.revision = uuid.New()
	f.publishLocked(notify.ChangeContent, old, expr.Serialize(f.root), nil, "insert")
	return nil
}

// DeleteBackward removes the node before the selection head.
// Returns false when the head is at the start of its row.
func (f *Field) DeleteBackward() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.sel.Head
	row, err := expr.Resolve(f.root, p)
	if err != nil {
		return false
	}
	off := p[len(p)-1]
	if off == 0 {
		return false
	}

	old := expr.Serialize(f.root)
	updated := make(expr.Row, 0, len(row)-1)
	updated = append(updated, row[:off-1]...)
	updated = append(updated, row[off:]...)
	f.setRow(p, updated)

	np := p.Clone()
	np[len(np)-1] = off - 1
	f.sel = Selection{Anchor: np, Head: np.Clone()}

	f.revision = uuid.New()
	f.publishLocked(notify.ChangeContent, old, expr.Serialize(f.root), nil, "delete")
	return true
}

// parse interprets text per mode.
func (f *Field) parse(text string, mode Mode) (expr.Row, error) {
	if mode == ModeText {
		return parseLiteral(text)
	}
	row, err := expr.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return row, nil
}

// spliceAtHead inserts nodes at the selection head and collapses the
// selection after them. Caller holds the lock.
func (f *Field) spliceAtHead(nodes expr.Row) error {
	p := f.sel.Head
	row, err := expr.Resolve(f.root, p)
	if err != nil {
		return err
	}
	off := p[len(p)-1]

	updated := make(expr.Row, 0, len(row)+len(nodes))
	updated = append(updated, row[:off]...)
	updated = append(updated, nodes...)
	updated = append(updated, row[off:]...)
	f.setRow(p, updated)

	np := p.Clone()
	np[len(np)-1] = off + len(nodes)
	f.sel = Selection{Anchor: np, Head: np.Clone()}
	return nil
}

// setRow replaces the row addressed by path p with row.
// Caller holds the lock and has already validated p against the tree.
func (f *Field) setRow(p expr.Path, row expr.Row) {
	if len(p) == 1 {
		f.root = row
		return
	}
	cur := f.root
	for i := 0; i+3 < len(p); i += 2 {
		cur = cur[p[i]].Args[p[i+1]]
	}
	cur[p[len(p)-3]].Args[p[len(p)-2]] = row
}

// publishLocked emits a change unless suppressed. A non-nil override takes
// precedence over the field's suppress flag. Caller holds the lock.
func (f *Field) publishLocked(t notify.ChangeType, oldState, newState string, override *bool, source string) {
	suppress := f.suppress
	if override != nil {
		suppress = *override
	}
	if suppress || f.notifier == nil {
		return
	}
	f.notifier.Notify(notify.Change{
		Type:     t,
		Revision: f.revision,
		Old:      oldState,
		New:      newState,
		Source:   source,
	})
}

// parseLiteral interprets text-mode content: each character becomes a
// symbol node. Only characters that survive a serialize/parse round trip
// are accepted.
func parseLiteral(text string) (expr.Row, error) {
	row := expr.Row{}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == ' ':
			// skip
		case isLiteralSafe(c):
			row = append(row, &expr.Node{Kind: expr.KindSym, Text: string(c)})
		default:
			return nil, fmt.Errorf("%w: character %q not representable", ErrInvalidContent, c)
		}
	}
	return row, nil
}

func isLiteralSafe(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || strings.ContainsRune("+-*/=<>!(),.|;:", rune(c))
}

// balanceFences appends closing fences for any left unbalanced.
func balanceFences(text string) string {
	var parens, brackets int
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			parens++
		case ')':
			if parens > 0 {
				parens--
			}
		case '[':
			brackets++
		case ']':
			if brackets > 0 {
				brackets--
			}
		}
	}
	var b strings.Builder
	b.WriteString(text)
	for ; brackets > 0; brackets-- {
		b.WriteByte(']')
	}
	for ; parens > 0; parens-- {
		b.WriteByte(')')
	}
	return b.String()
}
