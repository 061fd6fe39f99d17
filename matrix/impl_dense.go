// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major), safe accessors, equality & hash.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Row return errors instead of panicking,
//     and every method accepts a nil receiver.
//   - Guarantee immutability: constructors copy, accessors copy, kernels write into
//     fresh buffers and only then wrap them as *Dense.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// AI-Hints:
//   - Kernels inside this package operate on the flat data slice directly.
//   - Collaborators outside the package use RowMajor/Row/ToRows (copies) or At.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) copy; At: O(1); Row: O(c); RowMajor/ToRows: O(r*c); Equal: O(r*c);
//     Hash: O(r*c) once, O(1) afterwards.

package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"   // method tag used in error wrappers
	ctxRow      = "Row"  // method tag used in error wrappers
	ctxFromRows = "FromRows"
)

// ---------- Formatting literals  ----------
const (
	_fmtColSep = "\t"
	_fmtRowEnd = "\n"
)

// ---------- Hash fold constants ----------
const (
	hashSeed       uint64 = 17
	hashMultiplier uint64 = 23
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// MAIN DESCRIPTION:
//   - Attach method context and coordinates to a sentinel error for diagnostics.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Behavior highlights:
//   - Stable, human-friendly messages; preserves sentinel via %w.
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete, logically immutable row-major matrix.
//   - r,c hold dimensions (rows, cols), both > 0 for every public value.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//     It is never shared with callers: constructors copy in, accessors copy out.
//   - hash memoizes Hash(); set once at construction, evaluated at most once.
type Dense struct {
	r, c int           // row and column counts
	data []float64     // contiguous row-major storage (len == r*c)
	hash func() uint64 // write-once hash cache (sync.OnceValue)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil) // *Dense implements the read-only Matrix interface
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c matrix from a row-major buffer.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation; the input is copied.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: nil data means "all zeros"; otherwise len(data) must equal rows*cols.
//   - Stage 3: copy data into a private buffer and wrap it.
//
// Behavior highlights:
//   - The returned matrix never aliases data; later writes to data are invisible.
//   - No panics on user errors; returns sentinel errors.
//
// Inputs:
//   - rows, cols: positive dimensions.
//   - data      : nil, or exactly rows*cols values in row-major order.
//
// Returns:
//   - *Dense: newly allocated matrix.
//
// Errors:
//   - ErrInvalidDimensions (non-positive shape).
//   - ErrBadShape          (len(data) != rows*cols).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, data []float64) (*Dense, error) {
	if err := ValidateShape(rows, cols); err != nil {
		return nil, err
	}
	buf := make([]float64, rows*cols)
	if data != nil {
		if len(data) != rows*cols {
			return nil, fmt.Errorf("NewDense: %d values for %dx%d: %w", len(data), rows, cols, ErrBadShape)
		}
		copy(buf, data) // caller keeps ownership of data
	}

	return wrapDense(rows, cols, buf), nil
}

// NewDenseFromRows creates a matrix from a rectangular 2-D buffer (rows[i][j]).
// MAIN DESCRIPTION:
//   - Mirrors the "construct from double[,]" entry point; every row is copied.
//
// Implementation:
//   - Stage 1: validate len(rows)>0 and len(rows[0])>0.
//   - Stage 2: validate every row has len(rows[0]) entries.
//   - Stage 3: copy rows into a single flat buffer.
//
// Errors:
//   - ErrInvalidDimensions (no rows or no columns).
//   - ErrBadShape          (ragged input; message names the offending row).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])
	if err := ValidateShape(r, c); err != nil {
		return nil, err
	}
	buf := make([]float64, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("Dense.%s: row %d has %d values, want %d: %w", ctxFromRows, i, len(row), c, ErrBadShape)
		}
		copy(buf[i*c:(i+1)*c], row)
	}

	return wrapDense(r, c, buf), nil
}

// newDense allocates a zero r×c matrix for kernels whose shape is already validated.
func newDense(rows, cols int) *Dense {
	return wrapDense(rows, cols, make([]float64, rows*cols))
}

// wrapDense takes ownership of a freshly built buffer. Callers must not keep
// a reference to data after the call.
func wrapDense(rows, cols int, data []float64) *Dense {
	m := &Dense{r: rows, c: cols, data: data}
	m.hash = sync.OnceValue(m.computeHash)

	return m
}

// Rows returns the row count, 0 for a nil receiver. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int {
	if m == nil {
		return 0
	}

	return m.r
}

// Cols returns the column count, 0 for a nil receiver. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int {
	if m == nil {
		return 0
	}

	return m.c
}

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.Rows(), m.Cols() }

// IsSquare reports whether Rows() == Cols(). A nil matrix is not square.
func (m *Dense) IsSquare() bool { return m != nil && m.r == m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods wrap the sentinel with coordinates and method name.
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// MAIN DESCRIPTION:
//   - Safe element read at coordinates.
//
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: load from flat buffer.
//
// Errors:
//   - ErrNilMatrix for a nil receiver.
//   - ErrOutOfRange when out of bounds, wrapped as "Dense.At(i,j): ...".
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) At(row, col int) (float64, error) {
	if m == nil {
		return 0, denseErrorf(ctxAt, row, col, ErrNilMatrix)
	}
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err) // wrap with context
	}

	return m.data[off], nil
}

// Row returns a fresh copy of row i.
// Errors: ErrNilMatrix for a nil receiver, ErrOutOfRange when i is outside
// [0, Rows()).
// Complexity: O(c).
func (m *Dense) Row(i int) ([]float64, error) {
	if m == nil {
		return nil, denseErrorf(ctxRow, i, 0, ErrNilMatrix)
	}
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// RowMajor returns a fresh row-major copy of all elements (len == Rows()*Cols()).
// It is the explicit export path for codecs; mutating the result never affects m.
// A nil receiver yields nil.
// Complexity: O(r*c).
func (m *Dense) RowMajor() []float64 {
	if m == nil {
		return nil
	}
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// ToRows returns a fresh 2-D copy (out[i][j] == m[i,j]).
// Complexity: O(r*c) time, one backing allocation plus the row headers.
func (m *Dense) ToRows() [][]float64 {
	if m == nil {
		return nil
	}
	flat := m.RowMajor()
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = flat[i*m.c : (i+1)*m.c : (i+1)*m.c]
	}

	return out
}

// Equal reports exact elementwise equality: same shape and a[i,j] == b[i,j].
// MAIN DESCRIPTION:
//   - Value equality with IEEE-754 comparison and no tolerance.
//
// Behavior highlights:
//   - NaN compares unequal to everything, so a matrix holding NaN is not Equal
//     to itself; +0 and -0 compare equal.
//   - Two nil matrices are equal; nil and non-nil are not.
//   - For tolerance-based comparison use AllClose.
//
// Complexity:
//   - Time O(r*c) worst case, early exit on first difference; Space O(1).
func Equal(a, b *Dense) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.r != b.r || a.c != b.c {
		return false
	}
	for idx := range a.data {
		if a.data[idx] != b.data[idx] {
			return false
		}
	}

	return true
}

// Equal is the method form of Equal(m, other).
func (m *Dense) Equal(other *Dense) bool { return Equal(m, other) }

// Hash returns an order-dependent fold of all elements, consistent with Equal:
// Equal(a, b) implies a.Hash() == b.Hash(). Computed once and memoized.
// A nil receiver hashes to the bare seed.
// Complexity: O(r*c) on first call, O(1) afterwards.
func (m *Dense) Hash() uint64 {
	if m == nil {
		return hashSeed
	}
	if m.hash == nil { // zero-value Dense built outside the constructors
		return m.computeHash()
	}

	return m.hash()
}

// computeHash folds h = h*23 + bits(v) from seed 17 in row-major order.
// -0 is folded as +0 so that the fold agrees with == on zeros.
func (m *Dense) computeHash() uint64 {
	h := hashSeed
	for _, v := range m.data {
		if v == 0 {
			v = 0 // collapse -0 into +0
		}
		h = h*hashMultiplier + math.Float64bits(v)
	}

	return h
}

// String renders rows separated by newlines and columns separated by tabs.
// Intended for diagnostics, not as a stable serialization format.
// Complexity: O(r*c).
func (m *Dense) String() string {
	if m == nil {
		return "<nil>"
	}
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ { // iterate rows deterministically
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(_fmtColSep)
			}
			b.WriteString(strconv.FormatFloat(m.data[base+j], 'g', -1, 64))
		}
		b.WriteString(_fmtRowEnd)
	}

	return b.String()
}

// Do visits each element (i,j) in row-major order and calls f(i,j,v).
// Read-only visitor; stops early when f returns false.
// Complexity: O(r*c), Space O(1).
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	if m == nil {
		return
	}
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return // early exit requested by caller
			}
		}
	}
}
