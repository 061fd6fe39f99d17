// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the arithmetic and inversion kernels.
package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/densemat/matrix"
)

// fixtureAB returns the 2×2 pair used by the worked scenario.
func fixtureAB(t *testing.T) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	return MustRows(t, [][]float64{{1, 2}, {3, 4}}), MustRows(t, [][]float64{{5, 6}, {7, 8}})
}

func TestScenario_TwoByTwo(t *testing.T) {
	t.Parallel()
	a, b := fixtureAB(t)

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	RequireEqualExact(t, MustRows(t, [][]float64{{6, 8}, {10, 12}}), sum)

	prod, err := matrix.Mul(a, b)
	require.NoError(t, err)
	RequireEqualExact(t, MustRows(t, [][]float64{{19, 22}, {43, 50}}), prod)

	tr, err := matrix.Transpose(a)
	require.NoError(t, err)
	RequireEqualExact(t, MustRows(t, [][]float64{{1, 3}, {2, 4}}), tr)

	inv, det, err := matrix.Inverse(a)
	require.NoError(t, err)
	require.Equal(t, -2.0, det)
	RequireEqualExact(t, MustRows(t, [][]float64{{-2, 1}, {1.5, -0.5}}), inv)
}

func TestOperandsNeverMutated(t *testing.T) {
	t.Parallel()
	a, b := fixtureAB(t)
	wantA, wantB := a.RowMajor(), b.RowMajor()

	_, _ = matrix.Add(a, b)
	_, _ = matrix.Sub(a, b)
	_, _ = matrix.Mul(a, b)
	_, _ = matrix.Scale(a, 3)
	_, _ = matrix.DivScalar(a, 3)
	_, _ = matrix.Negate(a)
	_, _ = matrix.Transpose(a)
	_, _, _ = matrix.Inverse(a)

	require.Equal(t, wantA, a.RowMajor())
	require.Equal(t, wantB, b.RowMajor())
}

func TestAddSub_RoundTripExact(t *testing.T) {
	t.Parallel()
	for seed := int64(1); seed <= 5; seed++ {
		a := RandIntDense(t, 4, 6, seed)
		b := RandIntDense(t, 4, 6, seed+100)

		sum, err := a.Add(b)
		require.NoError(t, err)
		back, err := sum.Sub(b)
		require.NoError(t, err)
		RequireEqualExact(t, a, back)
	}
}

func TestAddSub_DimensionMismatch(t *testing.T) {
	t.Parallel()
	a := MustDense(t, 2, 3, nil)
	b := MustDense(t, 3, 2, nil)

	_, err := matrix.Add(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Add(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Sub(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTranspose_Involution(t *testing.T) {
	t.Parallel()
	for _, shape := range [][2]int{{1, 1}, {1, 5}, {5, 1}, {3, 7}} {
		a := RandFilledDense(t, shape[0], shape[1], int64(shape[0]*31+shape[1]))
		at, err := a.T()
		require.NoError(t, err)
		require.Equal(t, shape[1], at.Rows())
		require.Equal(t, shape[0], at.Cols())

		att, err := at.Transpose()
		require.NoError(t, err)
		RequireEqualExact(t, a, att)
	}

	_, err := matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestScaleDiv_RoundTrip(t *testing.T) {
	t.Parallel()
	a := RandFilledDense(t, 5, 5, 3)
	for _, k := range []float64{3, -0.25, 1e6, 7.5e-4} {
		scaled, err := a.Scale(k)
		require.NoError(t, err)
		back, err := scaled.Div(k)
		require.NoError(t, err)
		RequireClose(t, a, back)
	}
}

func TestScale_MulScalarNegate(t *testing.T) {
	t.Parallel()
	a, _ := fixtureAB(t)

	s, err := matrix.Scale(a, 2)
	require.NoError(t, err)
	RequireEqualExact(t, MustRows(t, [][]float64{{2, 4}, {6, 8}}), s)

	ms, err := matrix.MulScalar(a, 2)
	require.NoError(t, err)
	RequireEqualExact(t, s, ms)

	neg, err := a.Neg()
	require.NoError(t, err)
	viaScale, err := matrix.Scale(a, -1)
	require.NoError(t, err)
	RequireEqualExact(t, viaScale, neg)

	_, err = matrix.Scale(nil, 2)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Negate(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestScale_IEEEPropagation(t *testing.T) {
	t.Parallel()
	a := MustDense(t, 1, 2, []float64{0, 1})
	s, err := matrix.Scale(a, math.Inf(1))
	require.NoError(t, err)
	require.True(t, math.IsNaN(MustAt(t, s, 0, 0)), "0*Inf is NaN")
	require.True(t, math.IsInf(MustAt(t, s, 0, 1), 1))
}

func TestDivScalar_ByZero(t *testing.T) {
	t.Parallel()
	for _, a := range []*matrix.Dense{
		MustDense(t, 1, 1, []float64{5}),
		RandFilledDense(t, 3, 4, 9),
		MustDense(t, 2, 2, nil),
	} {
		_, err := matrix.DivScalar(a, 0)
		require.ErrorIs(t, err, matrix.ErrDivideByZero)
		_, err = a.Div(math.Copysign(0, -1))
		require.ErrorIs(t, err, matrix.ErrDivideByZero)
	}

	_, err := matrix.DivScalar(nil, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix, "nil operand is reported before the divisor")
}

func TestMul_DimensionMismatch(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct{ ar, ac, br, bc int }{
		{1, 1, 2, 2},
		{2, 2, 1, 1},
		{2, 3, 2, 3},
		{3, 1, 3, 1},
		{1, 4, 3, 1},
	} {
		name := fmt.Sprintf("%dx%d*%dx%d", tc.ar, tc.ac, tc.br, tc.bc)
		t.Run(name, func(t *testing.T) {
			_, err := matrix.Mul(MustDense(t, tc.ar, tc.ac, nil), MustDense(t, tc.br, tc.bc, nil))
			require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
		})
	}

	_, err := matrix.Mul(nil, MustDense(t, 1, 1, nil))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul_Shapes(t *testing.T) {
	t.Parallel()
	a := RandFilledDense(t, 3, 5, 1)
	b := RandFilledDense(t, 5, 2, 2)
	c, err := a.Mul(b)
	require.NoError(t, err)
	require.Equal(t, 3, c.Rows())
	require.Equal(t, 2, c.Cols())

	var want mat.Dense
	want.Mul(toGonum(a), toGonum(b))
	RequireClose(t, fromGonum(t, &want), c)

	one, err := matrix.Mul(MustDense(t, 1, 1, []float64{3}), MustDense(t, 1, 1, []float64{-4}))
	require.NoError(t, err)
	require.Equal(t, -12.0, MustAt(t, one, 0, 0))
}

func TestMul_IdentityNeutral(t *testing.T) {
	t.Parallel()
	id, err := matrix.Identity(3)
	require.NoError(t, err)
	for seed := int64(0); seed < 4; seed++ {
		m := RandFilledDense(t, 3, int(seed)+1, seed)
		got, err := matrix.Mul(id, m)
		require.NoError(t, err)
		RequireEqualExact(t, m, got)
	}
}

func TestMul_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()
	a := RandFilledDense(t, 97, 40, 21)
	b := RandFilledDense(t, 40, 33, 22)

	seq, err := matrix.Mul(a, b, matrix.WithSequential())
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 3, 8, 64} {
		par, err := matrix.Mul(a, b, matrix.WithWorkers(workers), matrix.WithMinRowsPerWorker(1))
		require.NoError(t, err)
		RequireEqualExact(t, seq, par)
	}

	def, err := matrix.Mul(a, b)
	require.NoError(t, err)
	RequireEqualExact(t, seq, def)
}

func TestInverse_Errors(t *testing.T) {
	t.Parallel()
	_, _, err := matrix.Inverse(MustRows(t, [][]float64{{0, 0}, {0, 1}}))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, _, err = matrix.Inverse(MustRows(t, [][]float64{{1, 2}, {2, 4}}))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, _, err = matrix.Inverse(MustRows(t, [][]float64{{0, 0}, {0, 1}}), matrix.WithPivoting(matrix.PivotLargest))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, _, err = matrix.Inverse(MustDense(t, 2, 3, nil))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, _, err = matrix.Inverse(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestInverse_RowSwapFlipsDeterminant(t *testing.T) {
	t.Parallel()
	// Zero on the diagonal forces a swap in column 0.
	a := MustRows(t, [][]float64{{0, 1}, {1, 0}})
	inv, det, err := a.Inverse()
	require.NoError(t, err)
	require.Equal(t, -1.0, det)
	RequireEqualExact(t, a, inv)

	b := MustRows(t, [][]float64{{0, 2, 0}, {3, 0, 0}, {0, 0, 4}})
	_, det, err = matrix.Inverse(b)
	require.NoError(t, err)
	require.Equal(t, -24.0, det)
}

func TestInverse_IdentityProduct(t *testing.T) {
	t.Parallel()
	for _, n := range []int{1, 2, 5, 12} {
		for _, pivot := range []matrix.PivotStrategy{matrix.PivotFirstNonZero, matrix.PivotLargest} {
			a := RandFilledDense(t, n, n, int64(n)*17)
			if pivot == matrix.PivotFirstNonZero {
				a = DiagDominantDense(t, n, int64(n)*17)
			}
			inv, _, err := matrix.Inverse(a, matrix.WithPivoting(pivot))
			require.NoError(t, err)

			prod, err := matrix.Mul(a, inv)
			require.NoError(t, err)
			id, err := matrix.Identity(n)
			require.NoError(t, err)

			ok, err := matrix.AllClose(prod, id, 1e-8, 1e-8)
			require.NoError(t, err)
			require.True(t, ok, "n=%d pivot=%s", n, pivot)
		}
	}
}

func TestInverse_AgainstGonum(t *testing.T) {
	t.Parallel()
	for _, n := range []int{2, 4, 8} {
		a := DiagDominantDense(t, n, int64(n)+1000)

		var want mat.Dense
		require.NoError(t, want.Inverse(toGonum(a)))
		wantDet := mat.Det(toGonum(a))

		for _, pivot := range []matrix.PivotStrategy{matrix.PivotFirstNonZero, matrix.PivotLargest} {
			inv, det, err := matrix.Inverse(a, matrix.WithPivoting(pivot))
			require.NoError(t, err)
			RequireClose(t, fromGonum(t, &want), inv)
			require.InEpsilon(t, wantDet, det, 1e-9)
		}
	}
}

func TestInverse_PivotLargestScenario(t *testing.T) {
	t.Parallel()
	a, _ := fixtureAB(t)
	inv, det, err := matrix.Inverse(a, matrix.WithPivoting(matrix.PivotLargest))
	require.NoError(t, err)
	require.InDelta(t, -2.0, det, 1e-12)
	RequireClose(t, MustRows(t, [][]float64{{-2, 1}, {1.5, -0.5}}), inv)
}

func TestAllClose(t *testing.T) {
	t.Parallel()
	a := MustDense(t, 1, 3, []float64{1, 2, 3})
	b := MustDense(t, 1, 3, []float64{1, 2, 3 + 1e-10})

	ok, err := matrix.AllClose(a, b, 0, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 1e-12)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = matrix.AllClose(a, b, -1e-9, 0) // negative tolerance is normalized
	require.NoError(t, err)
	require.True(t, ok)

	withNaN := MustDense(t, 1, 3, []float64{1, 2, math.NaN()})
	ok, err = matrix.AllClose(withNaN, withNaN, 1, 1)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = matrix.AllClose(a, b, math.NaN(), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, err = matrix.AllClose(a, MustDense(t, 3, 1, nil), 0, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
