// SPDX-License-Identifier: MIT

package matrixio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/densemat/matrix"
)

const (
	opWriteJSON = "WriteJSON"
	opReadJSON  = "ReadJSON"
)

// WriteJSON writes m as a 2-level array ([[1,2],[3,4]]) followed by a newline.
// Nothing is written when m holds NaN or ±Inf.
//
// Errors: matrix.ErrNilMatrix, ErrNonFinite (names the first offending
// element), write errors from w.
func WriteJSON(w io.Writer, m matrix.Matrix) error {
	rows, cols, data, err := flatten(m)
	if err != nil {
		return ioErrorf(opWriteJSON, err)
	}
	for idx, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: element (%d,%d) = %v: %w", opWriteJSON, idx/cols, idx%cols, v, ErrNonFinite)
		}
	}

	grid := make([][]float64, rows)
	for i := range grid {
		grid[i] = data[i*cols : (i+1)*cols]
	}
	if err = json.NewEncoder(w).Encode(grid); err != nil {
		return ioErrorf(opWriteJSON, err)
	}

	return nil
}

// ReadJSON decodes a 2-level numeric array; the shape comes from the nesting.
// A UTF-8 or UTF-16 BOM is accepted.
//
// Errors:
//   - ErrMalformed: invalid JSON, non-numeric elements, null or empty
//     arrays, more than one top-level value.
//   - matrix.ErrBadShape: rows of different lengths.
func ReadJSON(r io.Reader) (*matrix.Dense, error) {
	dec := json.NewDecoder(unicodeReader(r))

	var grid [][]float64
	if err := dec.Decode(&grid); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformedf(opReadJSON, "empty input")
		}
		var syn *json.SyntaxError
		var typ *json.UnmarshalTypeError
		if errors.As(err, &syn) || errors.As(err, &typ) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, malformedf(opReadJSON, "%v", err)
		}
		return nil, ioErrorf(opReadJSON, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, malformedf(opReadJSON, "trailing data after the array")
	}
	if len(grid) == 0 {
		return nil, malformedf(opReadJSON, "no elements")
	}
	for i, row := range grid {
		if len(row) == 0 {
			return nil, malformedf(opReadJSON, "row %d is null or empty", i)
		}
	}
	if int64(len(grid))*int64(len(grid[0])) > MaxElements {
		return nil, ioErrorf(opReadJSON, ErrTooLarge)
	}

	m, err := matrix.NewDenseFromRows(grid)
	if err != nil {
		return nil, ioErrorf(opReadJSON, err)
	}

	return m, nil
}
