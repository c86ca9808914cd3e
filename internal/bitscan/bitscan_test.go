package bitscan

import (
	"bytes"
	"testing"

	"github.com/csvquery/docparser/internal/index"
)

func recordStrings(data []byte, idx index.Index) []string {
	out := make([]string, len(idx))
	for i, r := range idx {
		out[i] = string(data[r.Start:r.End()])
	}
	return out
}

func TestIndexBasicLines(t *testing.T) {
	data := []byte("ligne1\nligne2\nligne3\n")
	idx, err := Index(data, Options{})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if !idx.Valid(len(data)) {
		t.Fatalf("index invariants violated: %+v", idx)
	}
	got := recordStrings(data, idx)
	want := []string{"ligne1", "ligne2", "ligne3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIndexNoTrailingTerminator(t *testing.T) {
	data := []byte("only-line")
	idx, err := Index(data, Options{})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}
	if got := string(data[idx[0].Start:idx[0].End()]); got != "only-line" {
		t.Fatalf("record = %q", got)
	}
}

func TestIndexEmpty(t *testing.T) {
	idx, err := Index(nil, Options{})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if idx.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", idx.Len())
	}
}

func TestIndexCRLFTrim(t *testing.T) {
	data := []byte("a,b\r\nc,d\r\n")
	idx, err := Index(data, Options{TrimCR: true})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	got := recordStrings(data, idx)
	want := []string{"a,b", "c,d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIndexStrideIsChunkLocal(t *testing.T) {
	// Force three chunks so each worker resets its stride counter at 0.
	line := []byte("x\n")
	var buf bytes.Buffer
	chunkSize := 16
	// 40 bytes span three chunks at this artificially small size.
	for i := 0; i < 20; i++ {
		buf.Write(line)
	}
	data := buf.Bytes()

	idx, err := Index(data, Options{Stride: 3, ChunkSize: chunkSize})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if !idx.Valid(len(data)) {
		t.Fatalf("index invariants violated: %+v", idx)
	}
	// A chunk-local stride counter can keep a different number of records
	// than a single global stride-3 counter over the whole file (for this
	// input both keep 7); just assert the index stays internally consistent
	// and non-empty.
	if idx.Len() == 0 {
		t.Fatal("expected at least one surviving record")
	}
}

func TestIndexParallelChunksMatchSingleChunk(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 5000; i++ {
		buf.WriteString("row-data-goes-here\n")
	}
	data := buf.Bytes()

	small, err := Index(data, Options{ChunkSize: 4096})
	if err != nil {
		t.Fatalf("Index (chunked): %v", err)
	}
	whole, err := Index(data, Options{ChunkSize: len(data) * 2})
	if err != nil {
		t.Fatalf("Index (single chunk): %v", err)
	}

	if small.Len() != whole.Len() {
		t.Fatalf("chunked produced %d records, single chunk produced %d", small.Len(), whole.Len())
	}
	for i := range whole {
		if small[i] != whole[i] {
			t.Fatalf("record %d differs: chunked %+v, single %+v", i, small[i], whole[i])
		}
	}
}

func TestIndexNoRecordSplitAcrossBoundary(t *testing.T) {
	// A record deliberately straddles the nominal chunk boundary.
	data := bytes.Repeat([]byte("a"), 10)
	data = append(data, '\n')
	data = append(data, bytes.Repeat([]byte("b"), 10)...)
	data = append(data, '\n')

	idx, err := Index(data, Options{ChunkSize: 8})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if !idx.Valid(len(data)) {
		t.Fatalf("index invariants violated: %+v", idx)
	}
	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (no split records)", idx.Len())
	}
}
