package expr

import "strings"

// Kind identifies the structural type of a node.
type Kind int

const (
	// KindSym is a single symbol: a letter, digit, or \command.
	KindSym Kind = iota

	// KindOp is an operator or punctuation character.
	KindOp

	// KindGroup is a braced group with one argument row.
	KindGroup

	// KindFrac is a fraction with numerator and denominator rows.
	KindFrac

	// KindSup is a superscript with one argument row.
	KindSup

	// KindSub is a subscript with one argument row.
	KindSub
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSym:
		return "sym"
	case KindOp:
		return "op"
	case KindGroup:
		return "group"
	case KindFrac:
		return "frac"
	case KindSup:
		return "sup"
	case KindSub:
		return "sub"
	default:
		return "unknown"
	}
}

// Node is a single element of an expression row.
// Leaf nodes (KindSym, KindOp) have Text and no Args.
// Structured nodes have one or two argument rows.
type Node struct {
	Kind Kind
	Text string
	Args []Row
}

// Row is an ordered sequence of nodes.
type Row []*Node

// Serialize renders a row in the canonical textual form.
// Parse(Serialize(r)) reproduces r for any row built by this package.
func Serialize(row Row) string {
	var b strings.Builder
	serializeRow(&b, row)
	return b.String()
}

func serializeRow(b *strings.Builder, row Row) {
	for _, n := range row {
		serializeNode(b, n)
	}
}

func serializeNode(b *strings.Builder, n *Node) {
	switch n.Kind {
	case KindSym, KindOp:
		b.WriteString(n.Text)
	case KindGroup:
		b.WriteByte('{')
		serializeRow(b, n.Args[0])
		b.WriteByte('}')
	case KindFrac:
		b.WriteString(`\frac{`)
		serializeRow(b, n.Args[0])
		b.WriteString("}{")
		serializeRow(b, n.Args[1])
		b.WriteByte('}')
	case KindSup:
		b.WriteString("^{")
		serializeRow(b, n.Args[0])
		b.WriteByte('}')
	case KindSub:
		b.WriteString("_{")
		serializeRow(b, n.Args[0])
		b.WriteByte('}')
	}
}

// Clone returns a deep copy of a row.
func Clone(row Row) Row {
	if row == nil {
		return nil
	}
	out := make(Row, len(row))
	for i, n := range row {
		c := &Node{Kind: n.Kind, Text: n.Text}
		if n.Args != nil {
			c.Args = make([]Row, len(n.Args))
			for j, arg := range n.Args {
				c.Args[j] = Clone(arg)
			}
		}
		out[i] = c
	}
	return out
}
