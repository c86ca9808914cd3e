//go:build windows

package store

import (
	"io"
	"os"
)

// mapFile falls back to reading the whole file into an owned buffer on
// Windows, matching the teacher's own mmap_windows.go fallback
// (MmapFile == io.ReadAll, MunmapFile == no-op) rather than adding a second
// Windows-specific mmap dependency the pack never shows.
func mapFile(f *os.File) (data []byte, release func(), err error) {
	data, err = io.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}
