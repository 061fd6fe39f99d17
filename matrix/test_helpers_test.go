// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures and utilities for the kernels.
//   • Keep random data finite and seeded so failures are reproducible.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/densemat/matrix"
)

// Tolerances for comparing numerically derived results (inverse, round trips).
const (
	testRTol = 1e-9
	testATol = 1e-12
)

// MustDense builds an r×c *Dense from row-major values or fails the test.
// A nil data slice yields a zero matrix.
func MustDense(tb testing.TB, r, c int, data []float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c, data)
	require.NoError(tb, err)

	return m
}

// MustRows builds a *Dense from a rectangular [][]float64 or fails the test.
func MustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(tb, err)

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(tb testing.TB, m matrix.Matrix, i, j int) float64 {
	tb.Helper()
	v, err := m.At(i, j)
	require.NoError(tb, err)

	return v
}

// NewFilledDense returns an r×c matrix where every element equals v.
func NewFilledDense(tb testing.TB, r, c int, v float64) *matrix.Dense {
	tb.Helper()
	data := make([]float64, r*c)
	for i := range data {
		data[i] = v
	}

	return MustDense(tb, r, c, data)
}

// RandFilledDense returns an r×c matrix with values uniform in [-10, 10),
// drawn from a rand source seeded with seed.
func RandFilledDense(tb testing.TB, r, c int, seed int64) *matrix.Dense {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.Float64()*20 - 10
	}

	return MustDense(tb, r, c, data)
}

// DiagDominantDense returns a random n×n matrix whose diagonal outweighs each
// row, so elimination without row exchanges stays well conditioned.
func DiagDominantDense(tb testing.TB, n int, seed int64) *matrix.Dense {
	tb.Helper()
	data := RandFilledDense(tb, n, n, seed).RowMajor()
	for i := 0; i < n; i++ {
		data[i*n+i] += float64(10 * n)
	}

	return MustDense(tb, n, n, data)
}

// RandIntDense is like RandFilledDense but with small integer values, so that
// sums and products stay exact.
func RandIntDense(tb testing.TB, r, c int, seed int64) *matrix.Dense {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, r*c)
	for i := range data {
		data[i] = float64(rng.Intn(21) - 10)
	}

	return MustDense(tb, r, c, data)
}

// RequireEqualExact asserts Equal(got, want) and prints a readable diff otherwise.
func RequireEqualExact(tb testing.TB, want, got *matrix.Dense) {
	tb.Helper()
	if !matrix.Equal(want, got) {
		tb.Fatalf("matrices differ (-want +got):\n%s", cmp.Diff(want.ToRows(), got.ToRows()))
	}
}

// RequireClose asserts element-wise closeness within testRTol/testATol.
func RequireClose(tb testing.TB, want, got *matrix.Dense) {
	tb.Helper()
	opt := cmpopts.EquateApprox(testRTol, testATol)
	if diff := cmp.Diff(want.ToRows(), got.ToRows(), opt); diff != "" {
		tb.Fatalf("matrices not close (-want +got):\n%s", diff)
	}
}

// toGonum converts m into a gonum *mat.Dense for oracle comparisons.
func toGonum(m *matrix.Dense) *mat.Dense {
	return mat.NewDense(m.Rows(), m.Cols(), m.RowMajor())
}

// fromGonum converts a gonum matrix back into *matrix.Dense.
func fromGonum(tb testing.TB, g mat.Matrix) *matrix.Dense {
	tb.Helper()
	r, c := g.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, g.At(i, j))
		}
	}

	return MustDense(tb, r, c, data)
}
