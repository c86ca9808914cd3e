// Package index defines the Offset Index: an ordered sequence of
// (start, length) byte ranges into a Backing Store.
package index

// Record addresses one indexed range. Start and Length are offsets in
// bytes from the start of a Backing Store; the terminator (and, for the
// delimited parser, a preceding '\r') is never included.
type Record struct {
	Start  uint32
	Length uint32
}

// End returns the exclusive end offset of the record.
func (r Record) End() uint32 {
	return r.Start + r.Length
}

// Index is the ordered, non-overlapping sequence of Records produced by
// the Parallel Line Indexer. Ascending Start order is a hard invariant;
// every consumer (Document, the JSON dispatcher's normalization step)
// relies on it.
type Index []Record

// Len is the record count, i.e. Document.line_count().
func (idx Index) Len() int {
	return len(idx)
}

// Valid reports whether idx satisfies the §3 invariants against a backing
// region of length dataLen: ascending non-overlapping Start order and every
// range inside [0, dataLen). Used by tests, not on the hot path.
func (idx Index) Valid(dataLen int) bool {
	prevEnd := uint32(0)
	for i, r := range idx {
		if uint64(r.Start)+uint64(r.Length) > uint64(dataLen) {
			return false
		}
		if i > 0 && r.Start < prevEnd {
			return false
		}
		prevEnd = r.End()
	}
	return true
}
