// Package griderrors defines the error taxonomy shared by every grid
// operation: invalid input, unparsable codes, and the unimplemented polar
// case. Callers classify an error with Of to pick an HTTP status without
// string-matching messages.
package griderrors

import (
	"github.com/cockroachdb/errors"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindInvalidCode
	KindUnsupportedPolar
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindInvalidCode:
		return "InvalidCode"
	case KindUnsupportedPolar:
		return "UnsupportedPolar"
	default:
		return "Unknown"
	}
}

type gridError struct {
	kind Kind
	error
}

func (k Kind) new(msg string) error {
	return &gridError{kind: k, error: errors.New(msg)}
}

func (k Kind) newf(format string, args ...interface{}) error {
	return &gridError{kind: k, error: errors.Newf(format, args...)}
}

// InvalidArgument reports null/NaN input, a level outside [1,10], or an
// inverted bbox/height range.
func InvalidArgument(msg string) error { return KindInvalidArgument.new(msg) }

func InvalidArgumentf(format string, args ...interface{}) error {
	return KindInvalidArgument.newf(format, args...)
}

// InvalidCode reports a code string whose length, fragment, or hemisphere
// prefix does not parse.
func InvalidCode(msg string) error { return KindInvalidCode.new(msg) }

func InvalidCodef(format string, args ...interface{}) error {
	return KindInvalidCode.newf(format, args...)
}

// UnsupportedPolar reports |lat| >= 88 degrees on encode, or a level-1
// longitude index of 0 on decode (both reserved for the polar regions this
// standard does not define).
func UnsupportedPolar(msg string) error { return KindUnsupportedPolar.new(msg) }

// Of classifies err, walking wrapped causes, returning KindUnknown if err is
// nil or was not produced by this package.
func Of(err error) Kind {
	var ge *gridError
	if errors.As(err, &ge) {
		return ge.kind
	}
	return KindUnknown
}

func (e *gridError) Unwrap() error { return e.error }
