//go:build !windows

package store

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile memory-maps f read-only and advises the kernel of sequential
// access, mirroring the teacher's common.MmapFile contract (open → mmap →
// madvise) but against golang.org/x/sys/unix instead of raw syscall, so the
// same code path covers darwin/linux/bsd.
func mapFile(f *os.File) (data []byte, release func(), err error) {
	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := int(info.Size())

	data, err = unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}

	// Best-effort hint; the indexer scans the whole file sequentially once.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	release = func() {
		_ = unix.Munmap(data)
	}
	return data, release, nil
}
