// Package canopy implements Reduced Ordered Binary Decision Diagrams (BDDs) for
// Boolean functions and Zero-suppressed Decision Diagrams (ZDDs) for families of
// finite sets.
//
// Both diagram kinds share the same architecture: a hash-consing unique table
// gives every distinct node a single canonical identity, a set of per-operation
// compute tables memoize recursive calls, and a pair of value-type handles
// (BooleanFunction, Combination) expose the algebra of each diagram kind as
// ordinary Go methods. Neither table keeps a node alive on its own: every entry
// is a weak reference, and a node is reclaimed the moment its last handle or
// parent node disappears.
package canopy

import "errors"

// Sentinel errors returned or wrapped by this package. Wrap with fmt.Errorf's
// %w verb when additional context (a label, an index) is useful to the caller.
var (
	// ErrEmptyHandle is returned, or used as a panic value, when an operation is
	// attempted on the zero value of BooleanFunction or Combination.
	ErrEmptyHandle = errors.New("canopy: empty handle")

	// ErrMissingAssignment indicates Execute reached a decision node whose label
	// has no entry in the supplied Assignment.
	ErrMissingAssignment = errors.New("canopy: assignment missing label")

	// ErrCacheSize indicates a non-positive cache size was supplied to
	// WithComputeCacheSize.
	ErrCacheSize = errors.New("canopy: cache size must be positive")
)
