package docparser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure the way §3/§7 describes the taxonomy:
// Io, Format, Utf8, IndexOutOfBounds, JsonSyntax. The teacher never
// introduces a bespoke exception hierarchy for this — internal/writer and
// internal/indexer wrap stdlib errors with fmt.Errorf("...: %w", err) and
// let callers errors.Is/errors.As sentinel values. This module follows the
// same shape: one sentinel per kind, wrapped with context via %w.
type ErrorKind int

const (
	// KindIO covers file-not-found, permission, mmap and read failures.
	KindIO ErrorKind = iota
	// KindFormat covers structural expectation violations. (jsonlconv's
	// "top-level value is not an array" case is not an error: it is
	// reported through Result.WasArray with a nil error.)
	KindFormat
	// KindUTF8 covers invalid UTF-8 under strict validation or a safe
	// accessor re-check.
	KindUTF8
	// KindIndexOutOfBounds covers GetLine/LinesRange with an out-of-range
	// index.
	KindIndexOutOfBounds
	// KindJSONSyntax covers a JSON value parse failure.
	KindJSONSyntax
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindUTF8:
		return "utf8"
	case KindIndexOutOfBounds:
		return "index_out_of_bounds"
	case KindJSONSyntax:
		return "json_syntax"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per ErrorKind, usable with errors.Is.
var (
	ErrIO               = errors.New("docparser: io error")
	ErrFormat           = errors.New("docparser: format error")
	ErrUTF8             = errors.New("docparser: invalid utf-8")
	ErrIndexOutOfBounds = errors.New("docparser: index out of bounds")
	ErrJSONSyntax       = errors.New("docparser: json syntax error")
)

func sentinelFor(k ErrorKind) error {
	switch k {
	case KindIO:
		return ErrIO
	case KindFormat:
		return ErrFormat
	case KindUTF8:
		return ErrUTF8
	case KindIndexOutOfBounds:
		return ErrIndexOutOfBounds
	case KindJSONSyntax:
		return ErrJSONSyntax
	default:
		return ErrFormat
	}
}

// wrapErr builds an error that is both errors.Is(sentinel-for-kind) and
// carries the formatted detail message, the same two-for-one shape
// fmt.Errorf("...: %w", err) gives the teacher's own call sites.
func wrapErr(k ErrorKind, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinelFor(k), fmt.Sprintf(format, args...))
}

// wrapErrCause wraps cause under the given kind's sentinel while keeping
// cause reachable via errors.Unwrap/errors.Is.
func wrapErrCause(k ErrorKind, cause error) error {
	return fmt.Errorf("%w: %w", sentinelFor(k), cause)
}

// WrapIOErr wraps a failure opening or reading path under ErrIO. Exported
// for the txt/delim/jsonformat/jsonlconv packages, which see the raw OS
// error before docparser does.
func WrapIOErr(path string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, path, cause)
}

// WrapFormatErr builds a KindFormat error from a message.
func WrapFormatErr(format string, args ...any) error {
	return wrapErr(KindFormat, format, args...)
}

// WrapUTF8Err builds a KindUTF8 error from a message.
func WrapUTF8Err(format string, args ...any) error {
	return wrapErr(KindUTF8, format, args...)
}

// WrapJSONSyntaxErr wraps a JSON decoding failure under ErrJSONSyntax.
func WrapJSONSyntaxErr(cause error) error {
	return wrapErrCause(KindJSONSyntax, cause)
}

// ValidUTF8 reports whether b is well-formed UTF-8. Exported so sibling
// packages share one validation routine instead of re-importing
// unicode/utf8 with their own wrapper.
func ValidUTF8(b []byte) bool {
	return validUTF8(b)
}

// KindOf reports the ErrorKind an error was produced with, for callers
// that want to branch on kind rather than call errors.Is repeatedly.
func KindOf(err error) (ErrorKind, bool) {
	switch {
	case err == nil:
		return 0, false
	case errors.Is(err, ErrIO):
		return KindIO, true
	case errors.Is(err, ErrUTF8):
		return KindUTF8, true
	case errors.Is(err, ErrIndexOutOfBounds):
		return KindIndexOutOfBounds, true
	case errors.Is(err, ErrJSONSyntax):
		return KindJSONSyntax, true
	case errors.Is(err, ErrFormat):
		return KindFormat, true
	default:
		return 0, false
	}
}
