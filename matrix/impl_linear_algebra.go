// SPDX-License-Identifier: MIT
// Package matrix provides the canonical kernels over *Dense: element-wise
// addition and subtraction, scalar scaling and division, negation, transpose,
// row-parallel matrix multiplication, and Gauss-Jordan inversion with
// determinant tracking. All functions perform strict fail-fast validation
// through validators.go and return wrapped sentinels on misuse.
//
// Purpose:
//   - Be the single source of truth for every derived matrix; the method sugar
//     in api.go only forwards here.
//   - Never mutate operands: each kernel fills a fresh buffer and wraps it
//     as *Dense only after the last write.

package matrix

import (
	"fmt"
	"math"

	"github.com/katalvlaran/densemat/internal/parallel"
)

// ZeroSum is the initial accumulator for dot products.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in Inverse.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opDivScalar = "DivScalar"
	opNegate    = "Negate"
	opInverse   = "Inverse"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving the cause via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Internal helper for Add/Sub to share validation, allocation, and the flat loop.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b).
//   - Stage 2: single flat loop 0..n-1 into a fresh buffer.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opTag).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b *Dense, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	out := make([]float64, len(a.data))
	for idx := range out { // deterministic 0..n-1
		out[idx] = a.data[idx] + sign*b.data[idx]
	}

	return wrapDense(a.r, a.c, out), nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Implementation:
//   - Stage 1: Validate both operands are non-nil and have identical shapes.
//   - Stage 2: Single flat loop over the backing slices.
//
// Inputs:
//   - a: left operand.
//   - b: right operand with the same shape as a.
//
// Returns:
//   - *Dense: C[i,j] = A[i,j] + B[i,j].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c). Bandwidth-bound.
func Add(a, b *Dense) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
// Same contract as Add.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b *Dense) (*Dense, error) { return addSub(a, b, -1, opSub) }

// mapScalar applies f to every element of m into a fresh matrix.
func mapScalar(m *Dense, f func(v float64) float64) *Dense {
	out := make([]float64, len(m.data))
	for idx, v := range m.data {
		out[idx] = f(v)
	}

	return wrapDense(m.r, m.c, out)
}

// Scale returns a new matrix whose elements are k * m[i,j].
// Implementation:
//   - Stage 1: ValidateNotNil(m).
//   - Stage 2: flat multiply into a fresh buffer.
//
// Behavior highlights:
//   - No shape constraint; k may be 0, negative, NaN or ±Inf and propagates
//     per IEEE-754 (0*Inf yields NaN, etc.).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Scale(m *Dense, k float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	return mapScalar(m, func(v float64) float64 { return v * k }), nil
}

// MulScalar is the matrix×scalar product; identical to Scale.
func MulScalar(m *Dense, k float64) (*Dense, error) { return Scale(m, k) }

// DivScalar returns a new matrix whose elements are m[i,j] / k.
// Implementation:
//   - Stage 1: ValidateNotNil(m), ValidateDivisor(k) (exact k == 0 check).
//   - Stage 2: flat divide into a fresh buffer.
//
// Errors:
//   - ErrNilMatrix, ErrDivideByZero.
//
// Notes:
//   - Division (not multiplication by 1/k) keeps results exact whenever the
//     quotient is representable.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func DivScalar(m *Dense, k float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opDivScalar, err)
	}
	if err := ValidateDivisor(k); err != nil {
		return nil, matrixErrorf(opDivScalar, err)
	}

	return mapScalar(m, func(v float64) float64 { return v / k }), nil
}

// Negate returns -m, equivalent to Scale(m, -1).
// Errors: ErrNilMatrix.
func Negate(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opNegate, err)
	}

	return mapScalar(m, func(v float64) float64 { return v * -1 }), nil
}

// transposeData returns the flat row-major buffer of mᵀ (shape c×r).
func transposeData(m *Dense) []float64 {
	rows, cols := m.r, m.c
	out := make([]float64, rows*cols)
	var i, j, baseSrc int
	for i = 0; i < rows; i++ {
		baseSrc = i * cols
		for j = 0; j < cols; j++ {
			out[j*rows+i] = m.data[baseSrc+j] // data[i*cols + j] → out[j*rows + i]
		}
	}

	return out
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Implementation:
//   - Stage 1: ValidateNotNil(m).
//   - Stage 2: contiguous source walk, strided destination writes.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - Avoid transposing repeatedly in tight loops; hoist and reuse the result.
func Transpose(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	return wrapDense(m.c, m.r, transposeData(m)), nil
}

// Mul performs standard matrix multiplication C = A × B.
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: Transpose B once so that every dot product walks two contiguous
//     rows (A row i, Bᵀ row j).
//   - Stage 3: Fan result rows out over workers (internal/parallel.For). Row i
//     is written by exactly one goroutine; A and Bᵀ are read-only.
//   - Stage 4: Wrap the buffer only after every row is complete.
//
// Behavior highlights:
//   - Each C[i,j] is accumulated in fixed k order, so the result is
//     bit-identical regardless of worker count.
//   - No locks: workers share nothing but disjoint slices of the output.
//
// Inputs:
//   - a: left matrix with shape (r × n).
//   - b: right matrix with shape (n × c).
//   - opts: WithWorkers, WithMinRowsPerWorker, WithSequential, WithParallel.
//
// Returns:
//   - *Dense: new C with shape (r × c).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c + n*c) (result plus Bᵀ).
func Mul(a, b *Dense, opts ...Option) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	o := gatherOptions(opts...)

	aRows, inner, bCols := a.r, a.c, b.c
	bt := transposeData(b) // bCols × inner, row j == column j of b
	out := make([]float64, aRows*bCols)

	parallel.For(aRows, func(i int) {
		rowA := a.data[i*inner : (i+1)*inner]
		rowC := out[i*bCols : (i+1)*bCols]
		var j, k int
		var sum float64
		var rowBt []float64
		for j = 0; j < bCols; j++ {
			rowBt = bt[j*inner : (j+1)*inner]
			sum = ZeroSum
			for k = 0; k < inner; k++ {
				sum += rowA[k] * rowBt[k]
			}
			rowC[j] = sum
		}
	}, o.parallelConfig())

	return wrapDense(aRows, bCols, out), nil
}

// swapRows exchanges rows r1 and r2 of an n-column flat buffer in place.
func swapRows(data []float64, n, r1, r2 int) {
	a := data[r1*n : (r1+1)*n]
	b := data[r2*n : (r2+1)*n]
	for k := range a {
		a[k], b[k] = b[k], a[k]
	}
}

// findPivot returns the row index to use as pivot for column i, or -1 when
// every candidate at or below the diagonal is exactly zero.
//   - PivotFirstNonZero: i itself unless work[i,i]==0, else the first row below
//     with a nonzero entry.
//   - PivotLargest: the row with max |work[j,i]| for j ≥ i (ties keep the
//     upper row).
func findPivot(work []float64, n, i int, strategy PivotStrategy) int {
	var j int
	if strategy == PivotLargest {
		best, bestAbs := -1, 0.0
		for j = i; j < n; j++ {
			if v := math.Abs(work[j*n+i]); v > bestAbs {
				best, bestAbs = j, v
			}
		}
		return best
	}

	if work[i*n+i] != ZeroPivot {
		return i
	}
	for j = i + 1; j < n; j++ {
		if work[j*n+i] != ZeroPivot {
			return j
		}
	}

	return -1
}

// Inverse computes A⁻¹ by Gauss-Jordan elimination and returns it together
// with det(A).
// Implementation:
//   - Stage 1: ValidateSquare(m). Copy m into a private work buffer and build
//     an identity augmentation of the same size.
//   - Stage 2: For each pivot column i (strictly sequential):
//   - Select the pivot row (see findPivot). None → ErrSingular.
//   - If it differs from i, swap rows in both buffers and flip det's sign.
//   - det *= pivot, then divide the pivot row of both buffers by pivot.
//   - For every row j ≠ i, subtract work[j,i] × pivot row from row j in both
//     buffers, zeroing column i outside the pivot row.
//   - Stage 3: Wrap the augmentation as the inverse.
//
// Behavior highlights:
//   - Input m is read-only; on error no partial result escapes.
//   - det is the product of the unnormalized pivots, sign-adjusted by swaps.
//   - The zero test is exact (== 0.0); tiny pivots are accepted.
//
// Inputs:
//   - m: square matrix (n×n).
//   - opts: WithPivoting(PivotFirstNonZero|PivotLargest); default PivotFirstNonZero.
//
// Returns:
//   - *Dense: A⁻¹ (n×n).
//   - float64: det(A).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (wrapped with opInverse and the column).
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// Notes:
//   - PivotFirstNonZero only avoids division by zero; use PivotLargest for
//     ill-conditioned inputs.
func Inverse(m *Dense, opts ...Option) (*Dense, float64, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, 0, matrixErrorf(opInverse, err)
	}
	o := gatherOptions(opts...)

	n := m.r
	work := make([]float64, n*n)
	copy(work, m.data)
	aug := make([]float64, n*n)
	for i := 0; i < n; i++ {
		aug[i*n+i] = 1.0
	}

	var (
		i, j, k, p    int
		det           = 1.0
		pivot, factor float64
		rowPW, rowPA  []float64 // pivot row in work / aug
		rowJW, rowJA  []float64 // target row in work / aug
		baseI, baseJ  int
	)
	for i = 0; i < n; i++ {
		p = findPivot(work, n, i, o.pivot)
		if p < 0 {
			return nil, 0, matrixErrorf(opInverse, fmt.Errorf("column %d: %w", i, ErrSingular))
		}
		if p != i {
			swapRows(work, n, i, p)
			swapRows(aug, n, i, p)
			det = -det
		}

		baseI = i * n
		pivot = work[baseI+i]
		det *= pivot // accumulate the pivot before normalizing
		rowPW = work[baseI : baseI+n]
		rowPA = aug[baseI : baseI+n]
		for k = 0; k < n; k++ {
			rowPW[k] /= pivot
			rowPA[k] /= pivot
		}

		for j = 0; j < n; j++ {
			if j == i {
				continue
			}
			baseJ = j * n
			factor = work[baseJ+i]
			rowJW = work[baseJ : baseJ+n]
			rowJA = aug[baseJ : baseJ+n]
			for k = 0; k < n; k++ {
				rowJW[k] -= factor * rowPW[k]
				rowJA[k] -= factor * rowPA[k]
			}
		}
	}

	return wrapDense(n, n, aug), det, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized);
//     NaN/Inf tolerances are rejected with ErrNaNInf.
//   - NaN elements never satisfy the relation.
//
// Complexity:
//   - Time O(r*c), Space O(1). Deterministic, early exit on first violation.
//
// AI-Hints:
//   - Equal is exact; use AllClose when comparing results of inversion or
//     scale/divide round trips.
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	for idx := range a.data {
		// Negated comparison so that NaN differences fail the check.
		if !(math.Abs(a.data[idx]-b.data[idx]) <= atol+rtol*math.Abs(b.data[idx])) {
			return false, nil
		}
	}

	return true, nil
}
