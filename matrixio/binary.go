// SPDX-License-Identifier: MIT

package matrixio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/katalvlaran/densemat/matrix"
)

const (
	opWriteBinary    = "WriteBinary"
	opReadBinary     = "ReadBinary"
	opReadBinaryFile = "ReadBinaryFile"

	binaryHeaderSize = 8 // int32 rows + int32 cols
	binaryValueSize  = 8 // float64

	// binaryChunkValues caps how many values ReadBinary decodes per read.
	binaryChunkValues = 64 << 10
)

// WriteBinary writes int32 rows, int32 cols and then every element as an
// IEEE-754 float64, all little-endian, in row-major order.
// Errors: matrix.ErrNilMatrix, ErrTooLarge (a dimension exceeds int32),
// write errors from w.
func WriteBinary(w io.Writer, m matrix.Matrix) error {
	rows, cols, data, err := flatten(m)
	if err != nil {
		return ioErrorf(opWriteBinary, err)
	}
	if rows > math.MaxInt32 || cols > math.MaxInt32 {
		return ioErrorf(opWriteBinary, ErrTooLarge)
	}

	bw := bufio.NewWriter(w)
	var scratch [binaryValueSize]byte
	binary.LittleEndian.PutUint32(scratch[0:4], uint32(rows))
	binary.LittleEndian.PutUint32(scratch[4:8], uint32(cols))
	bw.Write(scratch[:binaryHeaderSize])
	for _, v := range data {
		binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v))
		bw.Write(scratch[:])
	}
	if err = bw.Flush(); err != nil {
		return ioErrorf(opWriteBinary, err)
	}

	return nil
}

// ReadBinary decodes the WriteBinary layout from a stream.
// Bytes after the last element are left unread in r.
//
// Errors:
//   - ErrMalformed on a truncated header or body.
//   - matrix.ErrInvalidDimensions for non-positive dimensions.
//   - ErrTooLarge when rows*cols exceeds MaxElements.
func ReadBinary(r io.Reader) (*matrix.Dense, error) {
	var head [binaryHeaderSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, shortRead(opReadBinary, "header", err)
	}
	rows, cols, err := decodeHeader(opReadBinary, head[:])
	if err != nil {
		return nil, err
	}

	// data grows as bytes arrive; the header alone never sizes an allocation.
	total := rows * cols
	scratch := make([]byte, min(total, binaryChunkValues)*binaryValueSize)
	data := make([]float64, 0, min(total, binaryChunkValues))
	for len(data) < total {
		n := min(total-len(data), binaryChunkValues)
		chunk := scratch[:n*binaryValueSize]
		if _, err = io.ReadFull(r, chunk); err != nil {
			return nil, shortRead(opReadBinary, "body", err)
		}
		for off := 0; off < len(chunk); off += binaryValueSize {
			data = append(data, math.Float64frombits(binary.LittleEndian.Uint64(chunk[off:])))
		}
	}

	return matrix.NewDense(rows, cols, data)
}

// ReadBinaryFile memory-maps path read-only and decodes it. Unlike
// ReadBinary the whole file must be the matrix: trailing bytes are
// ErrMalformed. The mapping is released before returning; the result owns
// its own copy of the values.
func ReadBinaryFile(path string) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErrorf(opReadBinaryFile, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, ioErrorf(opReadBinaryFile, err)
	}
	// mapping an empty file fails on most platforms; report it as truncated
	if info.Size() < binaryHeaderSize {
		return nil, malformedf(opReadBinaryFile, "%d bytes, header needs %d", info.Size(), binaryHeaderSize)
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, ioErrorf(opReadBinaryFile, err)
	}
	defer mm.Unmap()

	return decodeBinary(opReadBinaryFile, mm)
}

// decodeBinary decodes a complete in-memory encoding.
func decodeBinary(op string, b []byte) (*matrix.Dense, error) {
	if len(b) < binaryHeaderSize {
		return nil, malformedf(op, "%d bytes, header needs %d", len(b), binaryHeaderSize)
	}
	rows, cols, err := decodeHeader(op, b[:binaryHeaderSize])
	if err != nil {
		return nil, err
	}
	body := b[binaryHeaderSize:]
	if want := rows * cols * binaryValueSize; len(body) != want {
		return nil, malformedf(op, "%dx%d needs %d body bytes, have %d", rows, cols, want, len(body))
	}

	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(body[i*binaryValueSize:]))
	}

	return matrix.NewDense(rows, cols, data)
}

// decodeHeader reads two little-endian int32 values and validates them.
func decodeHeader(op string, head []byte) (rows, cols int, err error) {
	r := int32(binary.LittleEndian.Uint32(head[0:4]))
	c := int32(binary.LittleEndian.Uint32(head[4:8]))
	if err = checkShape(op, int64(r), int64(c)); err != nil {
		return 0, 0, err
	}

	return int(r), int(c), nil
}

// shortRead maps io.EOF / io.ErrUnexpectedEOF to ErrMalformed.
func shortRead(op, part string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return malformedf(op, "truncated %s", part)
	}

	return ioErrorf(op, err)
}
