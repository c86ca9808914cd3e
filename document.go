// Package docparser provides the Document view: a Backing Store plus an
// Offset Index, returned by the txt, delim and jsonformat packages.
//
// Record slices borrowed from a Document are only ever exposed through the
// Document's own accessors and must not outlive it (§9, "Zero-copy
// lifetime") — Go has no borrow checker, so that discipline is the
// caller's responsibility, the same escape hatch §9 describes for
// languages without one.
package docparser

import (
	"unsafe"

	"github.com/csvquery/docparser/internal/docfp"
	"github.com/csvquery/docparser/internal/index"
	"github.com/csvquery/docparser/internal/store"
)

// Document is the user-visible, immutable view over an indexed file or
// buffer (§4.4). The zero value is not usable; obtain one from txt.Parse,
// delim.Parse or jsonformat.ParseDocument.
type Document struct {
	store *store.Store
	idx   index.Index
}

// New wraps a Store and an already-computed Offset Index into a Document.
// Exported for the txt/delim/jsonformat packages, which own the parsing
// policy that produces idx; Document itself has none.
func New(s *store.Store, idx index.Index) *Document {
	return &Document{store: s, idx: idx}
}

// Close releases the Document's reference to its Backing Store. Any slice
// obtained from this Document's accessors must not be used after Close.
func (d *Document) Close() error {
	return d.store.Close()
}

// LineCount returns the number of indexed records.
func (d *Document) LineCount() int {
	return d.idx.Len()
}

// Fingerprint returns a cheap 64-bit hash of the Document's Offset Index,
// for callers that want to compare two Documents (or two parses of the
// same file) without walking every record (§8 idempotence property).
func (d *Document) Fingerprint() uint64 {
	return docfp.Of(d.idx)
}

// bytesFor returns the raw byte slice for record i without bounds
// checking; callers must have already validated i.
func (d *Document) bytesFor(i int) []byte {
	r := d.idx[i]
	return d.store.Bytes()[r.Start:r.End()]
}

// unsafeString reinterprets b as a string without copying, matching the
// fast accessor's "no UTF-8 re-check" contract (§4.3): the precondition is
// that the chosen validation policy already covered this record.
func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// GetLine returns record i as a string with no UTF-8 re-validation (§4.4
// fast path). The precondition is that Parse's chosen validation policy
// (strict or lenient) already covered this record; violating it is how a
// caller can observe invalid UTF-8 through this accessor.
func (d *Document) GetLine(i int) (string, error) {
	if i < 0 || i >= d.idx.Len() {
		return "", wrapErr(KindIndexOutOfBounds, "line %d (have %d)", i, d.idx.Len())
	}
	return unsafeString(d.bytesFor(i)), nil
}

// GetLineSafe returns record i as a string, re-validating UTF-8 on every
// call (§4.4 safe accessor).
func (d *Document) GetLineSafe(i int) (string, error) {
	if i < 0 || i >= d.idx.Len() {
		return "", wrapErr(KindIndexOutOfBounds, "line %d (have %d)", i, d.idx.Len())
	}
	b := d.bytesFor(i)
	if !validUTF8(b) {
		return "", wrapErr(KindUTF8, "line %d is not valid utf-8", i)
	}
	return unsafeString(b), nil
}

// Lines returns a finite, ordered sequence over every indexed record
// (§4.4). It is a standard Go 1.23+ range-over-func iterator: each call to
// Lines produces a fresh, restartable sequence, but a single iteration is
// not restartable mid-flight once the range loop exits.
func (d *Document) Lines() func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for i := 0; i < d.idx.Len(); i++ {
			if !yield(unsafeString(d.bytesFor(i))) {
				return
			}
		}
	}
}

// LinesRange returns an iterator over records [a, b) (§4.4). It requires
// a <= b <= LineCount().
func (d *Document) LinesRange(a, b int) (func(yield func(string) bool), error) {
	n := d.idx.Len()
	if a < 0 || b < a || b > n {
		return nil, wrapErr(KindIndexOutOfBounds, "range [%d:%d) (have %d)", a, b, n)
	}
	return func(yield func(string) bool) {
		for i := a; i < b; i++ {
			if !yield(unsafeString(d.bytesFor(i))) {
				return
			}
		}
	}, nil
}

// StreamingLines splits a raw byte slice on '\n' and yields each piece as
// a string, validating UTF-8 per element (§4.4). It performs no
// indexing and is meant for ad-hoc, one-shot streaming over bytes the
// caller already holds, independent of any Document.
func StreamingLines(data []byte) func(yield func(string, error) bool) {
	return func(yield func(string, error) bool) {
		start := 0
		for i := 0; i <= len(data); i++ {
			if i == len(data) || data[i] == '\n' {
				line := data[start:i]
				if validUTF8(line) {
					if !yield(unsafeString(line), nil) {
						return
					}
				} else {
					if !yield("", wrapErr(KindUTF8, "streaming line at byte %d is not valid utf-8", start)) {
						return
					}
				}
				start = i + 1
			}
		}
	}
}
