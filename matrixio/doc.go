// SPDX-License-Identifier: MIT

// Package matrixio serializes matrix.Dense values in three layouts:
//
//   - Text: a "<rows> <cols>" header line, then one line per row with values
//     joined by a separator (tab by default; ";" for .csv files).
//   - Binary: int32 rows, int32 cols, then row-major float64 values, all
//     little-endian. ReadBinaryFile decodes straight from a read-only mmap.
//   - JSON: a bare 2-level array; the shape is inferred from the nesting.
//
// Every writer accepts the read-only matrix.Matrix view; every reader
// rebuilds a matrix through matrix.NewDense, so decoded values never alias
// codec buffers. Finite values round-trip exactly through all three formats.
// NaN and ±Inf round-trip through text and binary; WriteJSON rejects them
// with ErrNonFinite because JSON has no token for them.
//
// Files and batches (WriteFile, ReadFile, WriteBatch, ReadBatch) pick the
// codec from a Format value and name batch members "<prefix><index><ext>".
package matrixio
