package smt

import "errors"

// All errors are terminal for the operation in which they arise; the
// package performs no local recovery.
var (
	// ErrInvalidLeaf is returned when the claimed leaf value is on neither
	// side of the bottom sibling pair of a path.
	ErrInvalidLeaf = errors.New("invalid leaf")

	// ErrInvalidPathNodes is returned when the running hash at some level of
	// a path matches neither side of the next pair.
	ErrInvalidPathNodes = errors.New("path nodes are not consistent")

	// ErrHashMismatch is returned by PartialTree verification when a
	// recomputed parent differs from the stored (or empty) value.
	ErrHashMismatch = errors.New("recomputed parent does not match stored hash")

	// ErrParentNotFound indicates the parent of the root was requested. It
	// signals corrupt index math and is unreachable when the height is
	// respected.
	ErrParentNotFound = errors.New("parent not found")

	// ErrHeightOverflow is returned when leaves do not fit under the tree
	// height, or the height itself is out of range.
	ErrHeightOverflow = errors.New("leaves exceed tree capacity")
)
