// SPDX-License-Identifier: MIT

package matrixio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/densemat/matrix"
)

const (
	opWriteFile  = "WriteFile"
	opReadFile   = "ReadFile"
	opWriteBatch = "WriteBatch"
	opReadBatch  = "ReadBatch"
)

// pathOptions prepends the extension-derived separator so explicit options win.
func pathOptions(path string, opts []Option) []Option {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return append([]Option{WithSeparator(CSVSeparator)}, opts...)
	}

	return opts
}

// WriteFile creates (or truncates) path and encodes m into it.
// Text files ending in .csv default to the ";" separator.
func WriteFile(path string, m matrix.Matrix, f Format, opts ...Option) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return ioErrorf(opWriteFile, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = ioErrorf(opWriteFile, cerr)
		}
	}()

	if err = Encode(file, m, f, pathOptions(path, opts)...); err != nil {
		return fmt.Errorf("%s %s: %w", opWriteFile, path, err)
	}

	return nil
}

// ReadFile decodes the matrix stored at path. Binary files are read through
// ReadBinaryFile (memory-mapped); the others are streamed.
func ReadFile(path string, f Format, opts ...Option) (*matrix.Dense, error) {
	if f == FormatBinary {
		return ReadBinaryFile(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ioErrorf(opReadFile, err)
	}
	defer file.Close()

	m, err := Decode(file, f, pathOptions(path, opts)...)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", opReadFile, path, err)
	}

	return m, nil
}

// BatchPath returns dir/<prefix><index><ext>.
func BatchPath(dir, prefix string, index int, f Format) string {
	return filepath.Join(dir, prefix+strconv.Itoa(index)+f.Ext())
}

// WriteBatch writes ms[i] to BatchPath(dir, prefix, i, f), creating dir if
// needed. ctx is checked before each file; on cancellation the files already
// written are kept and ctx.Err() is returned.
func WriteBatch(ctx context.Context, dir, prefix string, f Format, ms []*matrix.Dense, opts ...Option) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ioErrorf(opWriteBatch, err)
	}
	for i, m := range ms {
		if err := ctx.Err(); err != nil {
			return ioErrorf(opWriteBatch, err)
		}
		if err := WriteFile(BatchPath(dir, prefix, i, f), m, f, opts...); err != nil {
			return ioErrorf(opWriteBatch, err)
		}
	}

	return nil
}

// ReadBatch reads every dir/<prefix><n><ext> file and returns the matrices
// ordered by n. Names whose middle part is not a plain decimal index are
// ignored; the indices found must be exactly 0..len-1.
//
// Errors: ErrMalformed for a gap in the indices or an index written with a
// leading zero (a_01), codec errors per file,
// ctx.Err() on cancellation.
func ReadBatch(ctx context.Context, dir, prefix string, f Format, opts ...Option) ([]*matrix.Dense, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ioErrorf(opReadBatch, err)
	}

	ext := f.Ext()
	indices := make([]int, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		idx, ok, ierr := batchIndex(e.Name(), prefix, ext)
		if ierr != nil {
			return nil, ierr
		}
		if ok {
			indices = append(indices, idx)
		}
	}
	slices.Sort(indices)
	for want, got := range indices {
		if got != want {
			return nil, malformedf(opReadBatch, "missing %s", BatchPath(dir, prefix, want, f))
		}
	}

	out := make([]*matrix.Dense, len(indices))
	for i := range out {
		if err = ctx.Err(); err != nil {
			return nil, ioErrorf(opReadBatch, err)
		}
		if out[i], err = ReadFile(BatchPath(dir, prefix, i, f), f, opts...); err != nil {
			return nil, ioErrorf(opReadBatch, err)
		}
	}

	return out, nil
}

// batchIndex extracts n from "<prefix><n><ext>". Names outside the pattern
// report ok=false. A digit run that BatchPath would not produce ("01",
// or one overflowing int) is ErrMalformed.
func batchIndex(name, prefix, ext string) (n int, ok bool, err error) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) || len(name) <= len(prefix)+len(ext) {
		return 0, false, nil
	}
	mid := name[len(prefix) : len(name)-len(ext)]
	for _, r := range mid {
		if r < '0' || r > '9' {
			return 0, false, nil
		}
	}
	if len(mid) > 1 && mid[0] == '0' {
		return 0, false, malformedf(opReadBatch, "%s: index has a leading zero", name)
	}
	if n, err = strconv.Atoi(mid); err != nil {
		return 0, false, malformedf(opReadBatch, "%s: index out of range", name)
	}

	return n, true, nil
}
