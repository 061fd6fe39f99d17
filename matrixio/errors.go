// SPDX-License-Identifier: MIT

package matrixio

import (
	"errors"
	"fmt"
)

// MaxElements bounds rows*cols accepted by the readers (2^27 values, 1 GiB
// of float64). Headers announcing more fail with ErrTooLarge before any
// allocation; the stream readers size their buffers from the bytes actually
// read, not from the header.
const MaxElements = 1 << 27

var (
	// ErrMalformed reports input that does not follow the layout of its format:
	// a bad header, a short or long row, an unparsable value, truncated or
	// trailing data.
	ErrMalformed = errors.New("matrixio: malformed input")

	// ErrTooLarge reports a header whose element count exceeds MaxElements,
	// or a matrix whose dimensions do not fit the binary int32 header.
	ErrTooLarge = errors.New("matrixio: matrix too large")

	// ErrNonFinite is returned by WriteJSON for NaN or ±Inf elements.
	ErrNonFinite = errors.New("matrixio: non-finite value")

	// ErrUnknownFormat reports an unsupported file extension or format name.
	ErrUnknownFormat = errors.New("matrixio: unknown format")
)

// ioErrorf wraps err with an operation tag, preserving it for errors.Is.
func ioErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// malformedf builds an ErrMalformed error with positional detail.
func malformedf(op, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), ErrMalformed)
}
