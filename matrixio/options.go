// SPDX-License-Identifier: MIT

package matrixio

import "strings"

const (
	// DefaultSeparator joins values in text rows.
	DefaultSeparator = "\t"

	// CSVSeparator is the separator WriteFile/ReadFile default to for .csv paths.
	CSVSeparator = ";"

	panicSeparatorInvalid = "matrixio: WithSeparator: separator must be non-empty and must not contain a newline"
)

// Option configures the text codec. Binary and JSON ignore every option.
type Option func(*options)

type options struct {
	sep string
}

// WithSeparator sets the value separator for text rows. A whitespace-only
// separator makes ReadText split on any run of blanks.
// Panics when sep is empty or contains '\n' or '\r'.
func WithSeparator(sep string) Option {
	if sep == "" || strings.ContainsAny(sep, "\r\n") {
		panic(panicSeparatorInvalid)
	}

	return func(o *options) { o.sep = sep }
}

func gatherOptions(opts ...Option) options {
	o := options{sep: DefaultSeparator}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
