// SPDX-License-Identifier: MIT

package matrixio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/densemat/matrix"
)

// Format selects one of the three codecs.
type Format int

const (
	FormatText Format = iota
	FormatBinary
	FormatJSON
)

// String returns the name accepted by ParseFormat.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Ext is the extension WriteBatch gives to files of this format.
func (f Format) Ext() string {
	switch f {
	case FormatText:
		return ".csv"
	case FormatBinary:
		return ".bin"
	case FormatJSON:
		return ".json"
	default:
		return ""
	}
}

// ParseFormat maps "text", "binary" or "json" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "text":
		return FormatText, nil
	case "binary":
		return FormatBinary, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("format %q: %w", name, ErrUnknownFormat)
	}
}

// FormatFromExt maps a file extension (with or without the dot, any case)
// to a Format: .csv, .txt and .tsv are text; .bin is binary; .json is JSON.
func FormatFromExt(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv", "txt", "tsv":
		return FormatText, nil
	case "bin":
		return FormatBinary, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("extension %q: %w", ext, ErrUnknownFormat)
	}
}

// FormatFromPath is FormatFromExt(filepath.Ext(path)).
func FormatFromPath(path string) (Format, error) { return FormatFromExt(filepath.Ext(path)) }

// Encode writes m to w in format f. Options apply to FormatText only.
func Encode(w io.Writer, m matrix.Matrix, f Format, opts ...Option) error {
	switch f {
	case FormatText:
		return WriteText(w, m, opts...)
	case FormatBinary:
		return WriteBinary(w, m)
	case FormatJSON:
		return WriteJSON(w, m)
	default:
		return fmt.Errorf("Encode: %v: %w", f, ErrUnknownFormat)
	}
}

// Decode reads a matrix in format f from r. Options apply to FormatText only.
func Decode(r io.Reader, f Format, opts ...Option) (*matrix.Dense, error) {
	switch f {
	case FormatText:
		return ReadText(r, opts...)
	case FormatBinary:
		return ReadBinary(r)
	case FormatJSON:
		return ReadJSON(r)
	default:
		return nil, fmt.Errorf("Decode: %v: %w", f, ErrUnknownFormat)
	}
}
