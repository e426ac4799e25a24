// Package expr implements the math expression tree used by the field engine.
//
// An expression is a Row of nodes. Leaf nodes are single symbols or
// operators; structured nodes (groups, fractions, scripts) carry argument
// rows, giving the tree its nesting. The package round-trips expressions
// through a compact LaTeX subset:
//
//	x+1
//	\frac{a}{b}
//	x^{2}+\alpha
//
// Positions inside a tree are addressed by Path values: alternating
// node/argument coordinates descending from the root, terminated by an
// offset into the addressed row. Paths are the currency of selection
// serialization in the field package.
package expr
