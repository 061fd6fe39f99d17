// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide the derived factories (Zero, ZeroSquare, Identity).
//   - Provide method sugar that stands in for operator overloading
//     (a.Add(b) for a+b, a.T() for ~a, ...). Every method forwards to the
//     canonical kernel; none re-validates or re-implements anything.
//
// Determinism & Policy:
//   - Facades never change the loop orders or options of underlying kernels.
//
// AI-Hints:
//   - Chain sugar calls only when every step's error is checked; there is no
//     panic-on-error variant.

package matrix

// ---------- Factories ----------

// Zero returns a new zero-initialized rows×cols matrix.
// Errors: ErrInvalidDimensions when rows<=0 or cols<=0.
// Complexity: O(rows*cols) zeroing by runtime.
func Zero(rows, cols int) (*Dense, error) {
	if err := ValidateShape(rows, cols); err != nil {
		return nil, err
	}

	return newDense(rows, cols), nil
}

// ZeroSquare is Zero(n, n).
func ZeroSquare(n int) (*Dense, error) { return Zero(n, n) }

// Identity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Errors: ErrInvalidDimensions when n<=0.
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
//
// AI-Hints: neutral element for Mul; Mul(Identity(r), M) equals M exactly.
func Identity(n int) (*Dense, error) {
	if err := ValidateShape(n, n); err != nil {
		return nil, err
	}
	data := make([]float64, n*n)
	for i := 0; i < n; i++ { // fixed i order guarantees reproducibility
		data[i*n+i] = 1.0
	}

	return wrapDense(n, n, data), nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
func ZerosLike(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ZerosLike", err)
	}

	return newDense(m.r, m.c), nil
}

// ---------- Operator sugar (methods forward 1:1 to kernels) ----------

// Add is a + b.
func (m *Dense) Add(b *Dense) (*Dense, error) { return Add(m, b) }

// Sub is a - b.
func (m *Dense) Sub(b *Dense) (*Dense, error) { return Sub(m, b) }

// Mul is the matrix product a × b.
func (m *Dense) Mul(b *Dense, opts ...Option) (*Dense, error) { return Mul(m, b, opts...) }

// Scale is k * a (and a * k).
func (m *Dense) Scale(k float64) (*Dense, error) { return Scale(m, k) }

// Div is a / k.
func (m *Dense) Div(k float64) (*Dense, error) { return DivScalar(m, k) }

// Neg is unary -a.
func (m *Dense) Neg() (*Dense, error) { return Negate(m) }

// Transpose returns mᵀ.
func (m *Dense) Transpose() (*Dense, error) { return Transpose(m) }

// T is the transpose shorthand (~a).
func (m *Dense) T() (*Dense, error) { return Transpose(m) }

// Inverse returns m⁻¹ and det(m).
func (m *Dense) Inverse(opts ...Option) (*Dense, float64, error) { return Inverse(m, opts...) }
