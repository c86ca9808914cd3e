// Command doctxt is the text-file CLI front-end described in §6: a thin
// exit-code shell over the txt package, out of the core's scope beyond
// that contract. It restores the parsing telemetry (§ SPEC_FULL
// "Supplemented features") the spec.md distillation dropped from the
// original cli/src/main.rs: line count, elapsed time, approximate resident
// memory, and indexing mode/stride.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/csvquery/docparser/internal/store"
	"github.com/csvquery/docparser/txt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: doctxt <path.txt>")
		os.Exit(1)
	}
	path := os.Args[1]

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext != "txt" {
		fmt.Fprintln(os.Stderr, "error: this parser only accepts .txt files")
		os.Exit(2)
	}

	size, err := store.StatSize(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing TXT: %v\n", err)
		os.Exit(1)
	}
	opts := txt.SelectStrategy(size)

	start := time.Now()
	doc, err := txt.ParseWithOptions(path, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing TXT: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	defer doc.Close()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	mode := "full"
	if opts.Stride > 1 {
		mode = "partial"
	}

	fmt.Printf("Document loaded: %d lines\n", doc.LineCount())
	fmt.Printf("Parse time: %v\n", elapsed)
	fmt.Printf("Memory used (approx): %d KB\n", mem.Sys/1024)
	fmt.Printf("Indexing mode: %s (stride = %d)\n", mode, opts.Stride)

	if first, err := doc.GetLine(0); err == nil {
		fmt.Printf("Line 1: %s\n", first)
	}

	os.Exit(0)
}
