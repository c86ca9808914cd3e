// Package store implements the Backing Store: a reference-counted,
// immutable byte view over either a memory-mapped file or an owned
// in-memory buffer.
//
// A Store is shareable and safe for concurrent read. Record slices handed
// out by a Document borrow directly from a Store's Bytes(); callers must
// not let those slices outlive the Document, and must not modify a mapped
// file while any Store derived from it is alive (undefined behavior, not
// an enforced invariant — see the package-level contract in docparser).
package store

import (
	"fmt"
	"os"
	"sync/atomic"
)

// Store is an opaque, ref-counted byte region. The zero value is not
// usable; obtain one via OpenMapped or FromBuffer.
type Store struct {
	bytes   []byte
	refs    *int32
	release func()
}

// Bytes returns the backing byte view. The returned slice is valid for as
// long as the Store (or any clone obtained via Retain) is alive.
func (s *Store) Bytes() []byte {
	return s.bytes
}

// Len returns the length of the backing byte view.
func (s *Store) Len() int {
	return len(s.bytes)
}

// Retain returns a new handle to the same backing region, bumping the
// reference count. Each Retain must be matched by a Close.
func (s *Store) Retain() *Store {
	atomic.AddInt32(s.refs, 1)
	return &Store{bytes: s.bytes, refs: s.refs, release: s.release}
}

// Close releases this handle. The underlying region (mmap or buffer) is
// torn down only once the last outstanding handle is closed.
func (s *Store) Close() error {
	if s.refs == nil {
		return nil
	}
	if atomic.AddInt32(s.refs, -1) == 0 && s.release != nil {
		s.release()
	}
	return nil
}

// FromBuffer takes ownership of an in-memory buffer (no copy) and wraps it
// as a Store. Used for synthetic buffers such as JSON normalization output.
func FromBuffer(data []byte) *Store {
	refs := int32(1)
	return &Store{bytes: data, refs: &refs}
}

// StatSize returns path's current size in bytes, used by the size-based
// strategy selectors (txt.SelectStrategy, jsonformat's small/large split).
func StatSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("store: stat %s: %w", path, err)
	}
	return info.Size(), nil
}

// OpenMapped memory-maps path read-only and advises the OS of sequential
// access where supported. The OS-specific mapping lives in store_unix.go /
// store_windows.go.
func OpenMapped(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("store: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		// mmap of a zero-length file fails on every platform; an empty
		// Store is well-defined (line_count == 0, §8 scenario 2).
		refs := int32(1)
		return &Store{bytes: []byte{}, refs: &refs}, nil
	}

	data, release, err := mapFile(file)
	if err != nil {
		return nil, fmt.Errorf("store: mmap %s: %w", path, err)
	}

	refs := int32(1)
	return &Store{bytes: data, refs: &refs, release: release}, nil
}
