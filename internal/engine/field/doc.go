// Package field implements the editable math field: an expression tree
// paired with a selection, change notification, and the serialization
// surface consumed by the history engine.
//
// A Field owns its expression exclusively. All mutation goes through
// ApplyText, ApplySelection, Insert, and DeleteBackward, each of which
// bumps the field revision and publishes a change notification unless
// notifications are suppressed.
//
// Content serializes to the compact LaTeX subset of the expr package.
// Selections serialize to JSON:
//
//	{"anchor":[0],"head":[2]}
//
// where each path is an expr.Path.
package field
