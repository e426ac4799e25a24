package expr

import (
	"errors"
	"fmt"
)

// ErrBadPath indicates a path that does not address a position in the tree.
var ErrBadPath = errors.New("invalid path")

// Path addresses a position within an expression tree. Elements alternate
// node index and argument index descending from the root; the final element
// is an offset into the addressed row (0..len, where len means "after the
// last node"). A path therefore always has odd length.
//
// RootPath addresses offset 0 of the root row.
type Path []int

// RootPath returns the path to the start of the root row.
func RootPath() Path {
	return Path{0}
}

// EndPath returns the path to the position after the last node of row.
func EndPath(row Row) Path {
	return Path{len(row)}
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Equal reports whether two paths address the same position.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Resolve walks the path against row and returns the row it terminates in.
// It fails with ErrBadPath when any coordinate is out of bounds or the path
// shape is invalid.
func Resolve(row Row, p Path) (Row, error) {
	if len(p) == 0 || len(p)%2 == 0 {
		return nil, fmt.Errorf("%w: length %d", ErrBadPath, len(p))
	}

	cur := row
	for i := 0; i+1 < len(p); i += 2 {
		nodeIdx, argIdx := p[i], p[i+1]
		if nodeIdx < 0 || nodeIdx >= len(cur) {
			return nil, fmt.Errorf("%w: node index %d out of range", ErrBadPath, nodeIdx)
		}
		n := cur[nodeIdx]
		if argIdx < 0 || argIdx >= len(n.Args) {
			return nil, fmt.Errorf("%w: argument index %d out of range", ErrBadPath, argIdx)
		}
		cur = n.Args[argIdx]
	}

	offset := p[len(p)-1]
	if offset < 0 || offset > len(cur) {
		return nil, fmt.Errorf("%w: offset %d out of range", ErrBadPath, offset)
	}
	return cur, nil
}
