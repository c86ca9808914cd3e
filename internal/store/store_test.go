package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMappedEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenMapped(path)
	if err != nil {
		t.Fatalf("OpenMapped: %v", err)
	}
	defer s.Close()

	if got := s.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
	if got := len(s.Bytes()); got != 0 {
		t.Fatalf("Bytes() length = %d, want 0", got)
	}
}

func TestOpenMappedContent(t *testing.T) {
	want := "ligne1\nligne2\nligne3\n"
	path := filepath.Join(t.TempDir(), "lines.txt")
	if err := os.WriteFile(path, []byte(want), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenMapped(path)
	if err != nil {
		t.Fatalf("OpenMapped: %v", err)
	}
	defer s.Close()

	if got := string(s.Bytes()); got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

func TestOpenMappedMissingFile(t *testing.T) {
	_, err := OpenMapped(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRetainAndClose(t *testing.T) {
	s := FromBuffer([]byte("hello"))

	clone := s.Retain()
	if err := s.Close(); err != nil {
		t.Fatalf("Close original: %v", err)
	}
	// clone still holds a reference; its bytes remain readable.
	if got := string(clone.Bytes()); got != "hello" {
		t.Fatalf("Bytes() after sibling Close = %q, want %q", got, "hello")
	}
	if err := clone.Close(); err != nil {
		t.Fatalf("Close clone: %v", err)
	}
}

func TestFromBuffer(t *testing.T) {
	data := []byte("abc")
	s := FromBuffer(data)
	defer s.Close()

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
}

func TestStatSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sized.txt")
	content := []byte("0123456789")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	size, err := StatSize(path)
	if err != nil {
		t.Fatalf("StatSize: %v", err)
	}
	if size != int64(len(content)) {
		t.Fatalf("StatSize() = %d, want %d", size, len(content))
	}
}
