// SPDX-License-Identifier: MIT

// Package matrix offers a dense, immutable float64 matrix and its arithmetic.
//
// The matrix package provides:
//
//   - Dense: a row-major r×c container. Constructors copy their input,
//     accessors (At, Row, RowMajor, ToRows) copy their output, and every
//     kernel returns a fresh value, so a *Dense never changes once built.
//   - Exact value semantics: Equal (IEEE-754 ==, no tolerance) and a memoized
//     Hash consistent with it. AllClose covers tolerance-based comparison.
//   - Kernels: Add, Sub, Scale/MulScalar, DivScalar, Negate, Transpose,
//     Mul (row-parallel, Bᵀ-cached) and Inverse (Gauss-Jordan returning the
//     determinant).
//   - Method sugar (a.Add(b), a.T(), ...) in place of operator overloading.
//
// Errors are package sentinels (ErrDimensionMismatch, ErrNonSquare,
// ErrSingular, ErrDivideByZero, ErrOutOfRange, ...) matched with errors.Is.
//
// Serialization lives in the sibling package matrixio.
package matrix
