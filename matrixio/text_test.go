// SPDX-License-Identifier: MIT

package matrixio_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/katalvlaran/densemat/matrix"
	"github.com/katalvlaran/densemat/matrixio"
)

func TestWriteText_Layout(t *testing.T) {
	t.Parallel()
	m := mustRows(t, [][]float64{{1, 2}, {3, 4.5}})

	var buf bytes.Buffer
	require.NoError(t, matrixio.WriteText(&buf, m))
	require.Equal(t, "2 2\n1\t2\n3\t4.5\n", buf.String())

	buf.Reset()
	require.NoError(t, matrixio.WriteText(&buf, hidden{m}, matrixio.WithSeparator(";")))
	require.Equal(t, "2 2\n1;2\n3;4.5\n", buf.String())
}

func TestText_RoundTrip(t *testing.T) {
	t.Parallel()
	for _, sep := range []string{"\t", ";", ",", " ", " | "} {
		m := randWide(t, 7, 5, int64(len(sep)))
		var buf bytes.Buffer
		require.NoError(t, matrixio.WriteText(&buf, m, matrixio.WithSeparator(sep)))

		got, err := matrixio.ReadText(&buf, matrixio.WithSeparator(sep))
		require.NoError(t, err, "sep %q", sep)
		requireSameBits(t, m, got)
	}
}

func TestText_NonFinite(t *testing.T) {
	t.Parallel()
	m := mustRows(t, [][]float64{{math.NaN(), math.Inf(1), math.Inf(-1)}})
	var buf bytes.Buffer
	require.NoError(t, matrixio.WriteText(&buf, m))
	require.Equal(t, "1 3\nNaN\t+Inf\t-Inf\n", buf.String())

	got, err := matrixio.ReadText(&buf)
	require.NoError(t, err)
	row, err := got.Row(0)
	require.NoError(t, err)
	require.True(t, math.IsNaN(row[0]))
	require.True(t, math.IsInf(row[1], 1))
	require.True(t, math.IsInf(row[2], -1))
}

func TestReadText_Lenient(t *testing.T) {
	t.Parallel()
	want := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	for name, in := range map[string]string{
		"crlf":            "2 2\r\n1\t2\r\n3\t4\r\n",
		"no final eol":    "2 2\n1\t2\n3\t4",
		"trailing blanks": "2 2\n1\t2\n3\t4\n\n  \n",
		"padded fields":   "  2   2 \n 1 \t 2\n3\t4 \n",
		"utf8 bom":        "\ufeff2 2\n1\t2\n3\t4\n",
	} {
		got, err := matrixio.ReadText(strings.NewReader(in))
		require.NoError(t, err, name)
		require.True(t, want.Equal(got), name)
	}

	ws, err := matrixio.ReadText(strings.NewReader("2 2\n1    2\n3 \t 4\n"), matrixio.WithSeparator(" "))
	require.NoError(t, err)
	require.True(t, want.Equal(ws))
}

func TestReadText_UTF16(t *testing.T) {
	t.Parallel()
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	in, err := enc.String("1 2\n0.25;-8\n")
	require.NoError(t, err)

	got, err := matrixio.ReadText(strings.NewReader(in), matrixio.WithSeparator(";"))
	require.NoError(t, err)
	require.True(t, mustRows(t, [][]float64{{0.25, -8}}).Equal(got))
}

func TestReadText_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", matrixio.ErrMalformed},
		{"one header field", "2\n", matrixio.ErrMalformed},
		{"three header fields", "2 2 2\n", matrixio.ErrMalformed},
		{"non-numeric header", "a b\n", matrixio.ErrMalformed},
		{"zero rows", "0 2\n", matrix.ErrInvalidDimensions},
		{"negative cols", "2 -1\n", matrix.ErrInvalidDimensions},
		{"too large", "100000 100000\n", matrixio.ErrTooLarge},
		{"missing row", "2 2\n1\t2\n", matrixio.ErrMalformed},
		{"short row", "2 2\n1\t2\n3\n", matrixio.ErrMalformed},
		{"long row", "1 2\n1\t2\t3\n", matrixio.ErrMalformed},
		{"bad value", "1 1\nx\n", matrixio.ErrMalformed},
		{"blank row", "2 1\n\n1\n", matrixio.ErrMalformed},
		{"trailing row", "1 1\n1\n2\n", matrixio.ErrMalformed},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := matrixio.ReadText(strings.NewReader(tc.in))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// A header just under MaxElements with no rows must fail without sizing any
// buffer from the header.
func TestReadText_TruncatedLargeHeaderStaysSmall(t *testing.T) {
	var err error
	got := allocatedBytes(func() {
		_, err = matrixio.ReadText(strings.NewReader("8192 16384\n"))
	})
	require.ErrorIs(t, err, matrixio.ErrMalformed)
	require.Less(t, got, uint64(allocBudget), "allocated %d bytes", got)
}

func TestWriteText_Nil(t *testing.T) {
	t.Parallel()
	var m *matrix.Dense
	require.ErrorIs(t, matrixio.WriteText(&bytes.Buffer{}, m), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrixio.WriteText(&bytes.Buffer{}, nil), matrix.ErrNilMatrix)
}

func TestWithSeparator_Panics(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { matrixio.WithSeparator("") })
	require.Panics(t, func() { matrixio.WithSeparator("\n") })
	require.Panics(t, func() { matrixio.WithSeparator(";\r") })
}
