// SPDX-License-Identifier: MIT

package matrixio

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/katalvlaran/densemat/matrix"
)

// flatten returns the shape and a row-major copy of m's elements.
// *matrix.Dense is exported through RowMajor; other implementations go
// through At.
func flatten(m matrix.Matrix) (rows, cols int, data []float64, err error) {
	if m == nil {
		return 0, 0, nil, matrix.ErrNilMatrix
	}
	if d, ok := m.(*matrix.Dense); ok {
		if d == nil {
			return 0, 0, nil, matrix.ErrNilMatrix
		}
		return d.Rows(), d.Cols(), d.RowMajor(), nil
	}

	rows, cols = m.Rows(), m.Cols()
	if err = matrix.ValidateShape(rows, cols); err != nil {
		return 0, 0, nil, err
	}
	data = make([]float64, 0, rows*cols)
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, 0, nil, err
			}
			data = append(data, v)
		}
	}

	return rows, cols, data, nil
}

// unicodeReader strips a UTF-8 BOM and transcodes UTF-16 input (detected by
// its BOM) to UTF-8. Input without a BOM passes through as UTF-8.
func unicodeReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
