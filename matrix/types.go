// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense storage and the kernels.
// This file intentionally contains ONLY the public read-only Matrix contract
// and the pivot strategy enum. Errors and options live in dedicated files
// (errors.go, options.go).
package matrix

// Matrix is the read-only view that collaborators (codecs, printers) consume.
// *Dense is the only implementation in this module; the interface exists so
// writers accept "anything with a shape and an element accessor".
//
// Complexity notes: all methods are expected O(1).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)
}

// PivotStrategy selects how Inverse picks the pivot row for each column.
type PivotStrategy int

const (
	// PivotFirstNonZero keeps the diagonal entry unless it is exactly 0.0, in
	// which case the first row below with a nonzero entry is swapped in.
	PivotFirstNonZero PivotStrategy = iota

	// PivotLargest performs classical partial pivoting: the entry of largest
	// magnitude at or below the diagonal is always swapped onto the diagonal.
	PivotLargest
)

// String returns a stable lowercase name, also accepted by ParsePivotStrategy.
func (p PivotStrategy) String() string {
	switch p {
	case PivotFirstNonZero:
		return "first"
	case PivotLargest:
		return "largest"
	default:
		return "unknown"
	}
}

// ParsePivotStrategy maps "first" / "largest" to a PivotStrategy.
// The boolean is false for any other input.
func ParsePivotStrategy(s string) (PivotStrategy, bool) {
	switch s {
	case "first":
		return PivotFirstNonZero, true
	case "largest":
		return PivotLargest, true
	default:
		return 0, false
	}
}
