// SPDX-License-Identifier: MIT
// Package matrix: pairwise kernels over equally long slices of matrices.
//
// Purpose:
//   - MulEach / SumProducts / EqualAll drive arrays of matrices through the
//     single-matrix kernels; they add only the length check on top.

package matrix

import (
	"context"
	"fmt"
)

const (
	opMulEach     = "MulEach"
	opSumProducts = "SumProducts"
)

// validatePairs ensures both slices are non-empty and equally long.
func validatePairs(a, b []*Dense) error {
	if len(a) != len(b) {
		return fmt.Errorf("lengths %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	if len(a) == 0 {
		return ErrInvalidDimensions
	}

	return nil
}

// MulEach returns out[i] = a[i] × b[i] for every pair.
// Errors: ErrDimensionMismatch (slice lengths or any pair's inner dims),
// ErrInvalidDimensions (empty input), ErrNilMatrix; the failing index is named.
// Complexity: sum of the pairwise Mul costs.
func MulEach(a, b []*Dense, opts ...Option) ([]*Dense, error) {
	return MulEachContext(context.Background(), a, b, opts...)
}

// MulEachContext is MulEach that checks ctx before each pair and returns
// ctx.Err() once it is done. A pair already being multiplied runs to the end.
func MulEachContext(ctx context.Context, a, b []*Dense, opts ...Option) ([]*Dense, error) {
	if err := validatePairs(a, b); err != nil {
		return nil, matrixErrorf(opMulEach, err)
	}
	out := make([]*Dense, len(a))
	var err error
	for i := range a {
		if err = ctx.Err(); err != nil {
			return nil, matrixErrorf(fmt.Sprintf("%s[%d]", opMulEach, i), err)
		}
		if out[i], err = Mul(a[i], b[i], opts...); err != nil {
			return nil, matrixErrorf(fmt.Sprintf("%s[%d]", opMulEach, i), err)
		}
	}

	return out, nil
}

// SumProducts returns Σ a[i] × b[i], starting from a zero accumulator shaped
// a[0].Rows() × b[0].Cols().
// Implementation:
//   - Stage 1: validate slice lengths; every term must have the first term's shape.
//   - Stage 2: accumulate in index order; each step allocates a fresh sum.
//
// Errors:
//   - ErrDimensionMismatch, ErrInvalidDimensions, ErrNilMatrix.
//
// Complexity:
//   - Time Σ O(r*n_i*c) + O(len*r*c), Space O(r*(n_max+c)).
func SumProducts(a, b []*Dense, opts ...Option) (*Dense, error) {
	return SumProductsContext(context.Background(), a, b, opts...)
}

// SumProductsContext is SumProducts with the per-term ctx check of
// MulEachContext.
func SumProductsContext(ctx context.Context, a, b []*Dense, opts ...Option) (*Dense, error) {
	if err := validatePairs(a, b); err != nil {
		return nil, matrixErrorf(opSumProducts, err)
	}
	if err := ValidateMulCompatible(a[0], b[0]); err != nil {
		return nil, matrixErrorf(opSumProducts, err)
	}

	acc := newDense(a[0].r, b[0].c)
	var (
		term *Dense
		err  error
	)
	for i := range a {
		if err = ctx.Err(); err != nil {
			return nil, matrixErrorf(fmt.Sprintf("%s[%d]", opSumProducts, i), err)
		}
		if term, err = Mul(a[i], b[i], opts...); err != nil {
			return nil, matrixErrorf(fmt.Sprintf("%s[%d]", opSumProducts, i), err)
		}
		if acc, err = Add(acc, term); err != nil {
			return nil, matrixErrorf(fmt.Sprintf("%s[%d]", opSumProducts, i), err)
		}
	}

	return acc, nil
}

// EqualAll reports whether both slices have the same length and Equal
// matrices at every index.
func EqualAll(a, b []*Dense) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}
