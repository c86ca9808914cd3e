// Package docfp computes a cheap content fingerprint over an Offset
// Index, grounded on the xxh3-based hash helper in jpl-au-folio's hash.go
// (there used to derive a document's _id from its label; here used to
// derive a Document's fingerprint from its index instead of its bytes, so
// two parses of the same file can be compared for the idempotence
// property — §8 — without walking every record).
package docfp

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"

	"github.com/csvquery/docparser/internal/index"
)

// Of returns a 64-bit fingerprint of idx. Two indexes with the same
// records in the same order always produce the same fingerprint; this is
// a hash, not a cryptographic digest, and is not a substitute for a deep
// equality check when collisions matter.
func Of(idx index.Index) uint64 {
	buf := make([]byte, 8*len(idx))
	for i, r := range idx {
		binary.LittleEndian.PutUint32(buf[i*8:], r.Start)
		binary.LittleEndian.PutUint32(buf[i*8+4:], r.Length)
	}
	return xxh3.Hash(buf)
}
