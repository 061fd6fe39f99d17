// SPDX-License-Identifier: MIT

package matrixio_test

import (
	"math"
	"math/rand"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/densemat/matrix"
)

// mustRows builds a matrix or fails the test.
func mustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(tb, err)

	return m
}

// randWide returns an r×c matrix of finite values spread over many magnitudes,
// including negative zero.
func randWide(tb testing.TB, r, c int, seed int64) *matrix.Dense {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.NormFloat64() * math.Pow(10, float64(rng.Intn(60)-30))
	}
	data[0] = math.Copysign(0, -1)
	m, err := matrix.NewDense(r, c, data)
	require.NoError(tb, err)

	return m
}

// requireSameBits asserts identical shape and bit-identical elements, which
// also covers NaN payloads and the sign of zero.
func requireSameBits(tb testing.TB, want, got *matrix.Dense) {
	tb.Helper()
	require.Equal(tb, want.Rows(), got.Rows())
	require.Equal(tb, want.Cols(), got.Cols())
	w, g := want.RowMajor(), got.RowMajor()
	for i := range w {
		require.Equal(tb, math.Float64bits(w[i]), math.Float64bits(g[i]), "element %d: %v vs %v", i, w[i], g[i])
	}
}

// hidden masks *matrix.Dense so writers take the generic At path.
type hidden struct{ matrix.Matrix }

// allocatedBytes reports the heap bytes allocated while fn runs. Callers must
// not run in parallel with other tests.
func allocatedBytes(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)

	return after.TotalAlloc - before.TotalAlloc
}

// allocBudget is far below what the large headers in the tests would need.
const allocBudget = 16 << 20
