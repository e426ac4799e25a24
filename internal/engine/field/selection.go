package field

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dmillard/mathcore/internal/engine/expr"
)

// ErrInvalidSelection indicates a selection that cannot be decoded or does
// not address positions in the current expression.
var ErrInvalidSelection = errors.New("invalid selection")

// Selection is a pair of paths into the expression tree. A collapsed
// selection (cursor) has Anchor == Head.
type Selection struct {
	Anchor expr.Path
	Head   expr.Path
}

// RootSelection returns the collapsed selection at the document root start.
func RootSelection() Selection {
	return Selection{Anchor: expr.RootPath(), Head: expr.RootPath()}
}

// IsCollapsed reports whether the selection is a bare cursor.
func (s Selection) IsCollapsed() bool {
	return s.Anchor.Equal(s.Head)
}

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	return Selection{Anchor: s.Anchor.Clone(), Head: s.Head.Clone()}
}

// EncodeSelection serializes a selection to its JSON form.
func EncodeSelection(s Selection) string {
	out, _ := sjson.Set("", "anchor", []int(s.Anchor))
	out, _ = sjson.Set(out, "head", []int(s.Head))
	return out
}

// DecodeSelection parses the JSON form of a selection. It validates shape
// only; ApplySelection validates the paths against the live tree.
func DecodeSelection(data string) (Selection, error) {
	if !gjson.Valid(data) {
		return Selection{}, fmt.Errorf("%w: not valid JSON", ErrInvalidSelection)
	}

	anchor, err := decodePath(gjson.Get(data, "anchor"))
	if err != nil {
		return Selection{}, err
	}
	head, err := decodePath(gjson.Get(data, "head"))
	if err != nil {
		return Selection{}, err
	}

	return Selection{Anchor: anchor, Head: head}, nil
}

func decodePath(res gjson.Result) (expr.Path, error) {
	if !res.IsArray() {
		return nil, fmt.Errorf("%w: path is not an array", ErrInvalidSelection)
	}

	elems := res.Array()
	path := make(expr.Path, len(elems))
	for i, e := range elems {
		if e.Type != gjson.Number {
			return nil, fmt.Errorf("%w: path element %d is not a number", ErrInvalidSelection, i)
		}
		path[i] = int(e.Int())
	}
	return path, nil
}
