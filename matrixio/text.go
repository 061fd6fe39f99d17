// SPDX-License-Identifier: MIT

package matrixio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/densemat/matrix"
)

const (
	opWriteText = "WriteText"
	opReadText  = "ReadText"

	// maxTextLine caps a single text row (64 MiB).
	maxTextLine = 64 << 20
)

// WriteText writes m as a "<rows> <cols>" header followed by one line per row.
// Values are formatted with strconv 'g' and the shortest precision that
// round-trips, so finite values, NaN and ±Inf all read back exactly.
//
// Errors: matrix.ErrNilMatrix, errors from m.At, and write errors from w.
func WriteText(w io.Writer, m matrix.Matrix, opts ...Option) error {
	o := gatherOptions(opts...)
	rows, cols, data, err := flatten(m)
	if err != nil {
		return ioErrorf(opWriteText, err)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.Itoa(rows))
	bw.WriteByte(' ')
	bw.WriteString(strconv.Itoa(cols))
	bw.WriteByte('\n')

	buf := make([]byte, 0, 32)
	var i, j int
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if j > 0 {
				bw.WriteString(o.sep)
			}
			buf = strconv.AppendFloat(buf[:0], data[i*cols+j], 'g', -1, 64)
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}

	// bufio.Writer keeps the first write error; Flush reports it.
	if err = bw.Flush(); err != nil {
		return ioErrorf(opWriteText, err)
	}

	return nil
}

// ReadText parses the layout produced by WriteText.
// Implementation:
//   - Stage 1: decode through a BOM-aware reader (UTF-8 BOM stripped, UTF-16 transcoded).
//   - Stage 2: header line → two whitespace-separated positive integers.
//   - Stage 3: exactly rows lines of exactly cols values each; fields are
//     trimmed, so "1 ; 2" and "1;2" parse alike.
//   - Stage 4: anything other than blank lines after the last row is an error.
//
// Behavior highlights:
//   - "\r\n" line endings are accepted.
//   - A whitespace-only separator splits on any run of blanks.
//
// Errors:
//   - ErrMalformed (header, row width, value syntax, missing or trailing rows).
//   - matrix.ErrInvalidDimensions (non-positive header values).
//   - ErrTooLarge (rows*cols > MaxElements).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func ReadText(r io.Reader, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)
	sc := bufio.NewScanner(unicodeReader(r))
	sc.Buffer(make([]byte, 0, 64<<10), maxTextLine)

	line := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return sc.Text(), true
	}

	header, ok := next()
	if !ok {
		return nil, scanErr(sc, malformedf(opReadText, "missing header"))
	}
	rows, cols, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	split := splitter(o.sep)
	// one row of capacity up front; later rows grow data as they parse
	data := make([]float64, 0, cols)
	var (
		i      int
		text   string
		fields []string
		v      float64
	)
	for i = 0; i < rows; i++ {
		if text, ok = next(); !ok {
			return nil, scanErr(sc, malformedf(opReadText, "got %d of %d rows", i, rows))
		}
		fields = split(text)
		if len(fields) != cols {
			return nil, malformedf(opReadText, "line %d: %d values, want %d", line, len(fields), cols)
		}
		for _, f := range fields {
			if v, err = strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
				return nil, malformedf(opReadText, "line %d: %q", line, f)
			}
			data = append(data, v)
		}
	}

	for {
		if text, ok = next(); !ok {
			break
		}
		if strings.TrimSpace(text) != "" {
			return nil, malformedf(opReadText, "line %d: trailing data", line)
		}
	}
	if err = sc.Err(); err != nil {
		return nil, ioErrorf(opReadText, err)
	}

	return matrix.NewDense(rows, cols, data)
}

// parseHeader reads "<rows> <cols>".
func parseHeader(s string) (rows, cols int, err error) {
	f := strings.Fields(s)
	if len(f) != 2 {
		return 0, 0, malformedf(opReadText, "header %q: want \"<rows> <cols>\"", s)
	}
	if rows, err = strconv.Atoi(f[0]); err != nil {
		return 0, 0, malformedf(opReadText, "header rows %q", f[0])
	}
	if cols, err = strconv.Atoi(f[1]); err != nil {
		return 0, 0, malformedf(opReadText, "header cols %q", f[1])
	}
	if err = checkShape(opReadText, int64(rows), int64(cols)); err != nil {
		return 0, 0, err
	}

	return rows, cols, nil
}

// checkShape validates decoded dimensions before anything is allocated.
func checkShape(op string, rows, cols int64) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%s: %dx%d: %w", op, rows, cols, matrix.ErrInvalidDimensions)
	}
	if rows > MaxElements || cols > MaxElements || rows*cols > MaxElements {
		return fmt.Errorf("%s: %dx%d: %w", op, rows, cols, ErrTooLarge)
	}

	return nil
}

// splitter returns the field splitter for sep.
func splitter(sep string) func(string) []string {
	if strings.TrimSpace(sep) == "" {
		return strings.Fields
	}

	return func(s string) []string { return strings.Split(s, sep) }
}

// scanErr prefers the scanner's I/O error over the structural fallback.
func scanErr(sc *bufio.Scanner, fallback error) error {
	if err := sc.Err(); err != nil {
		return ioErrorf(opReadText, err)
	}

	return fallback
}
