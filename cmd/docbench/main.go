// Command docbench generates a synthetic text file and times txt.Parse
// against it. Adapted from the teacher's cmd/benchmark/main.go, which
// generated a synthetic CSV and timed internal/indexer.Indexer.Run; here
// the generator writes plain newline-delimited rows and the timed
// operation is this module's own Parallel Line Indexer instead.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/csvquery/docparser/txt"
)

func main() {
	sizeMB := 500
	if len(os.Args) >= 2 {
		fmt.Sscanf(os.Args[1], "%d", &sizeMB)
	}

	fmt.Printf("Generating %d MB text file...\n", sizeMB)
	tmpDir, err := os.MkdirTemp("", "docparser_bench")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "bench.txt")
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}

	w := bufio.NewWriterSize(f, 64*1024)
	bytesWritten := int64(0)
	limit := int64(sizeMB) * 1024 * 1024
	rows := 0
	buf := make([]byte, 0, 256)
	rng := rand.New(rand.NewSource(123))

	for bytesWritten < limit {
		rows++
		buf = buf[:0]
		buf = fmt.Appendf(buf, "%d,US-%d,%d,\"Description for item %d with some padding to make it longer\"\n", rows, rng.Intn(1000), rng.Intn(10000), rows)
		n, _ := w.Write(buf)
		bytesWritten += int64(n)
	}
	if err := w.Flush(); err != nil {
		panic(err)
	}
	f.Close()

	fmt.Printf("Generated %d rows (%.2f MB)\n", rows, float64(bytesWritten)/1024/1024)
	fmt.Println("Starting parse...")

	start := time.Now()
	doc, err := txt.Parse(path)
	if err != nil {
		panic(err)
	}
	elapsed := time.Since(start)
	defer doc.Close()

	mbPerSec := float64(bytesWritten) / 1024 / 1024 / elapsed.Seconds()
	fmt.Printf("\n--------------------------------------------------\n")
	fmt.Printf("Lines:      %d\n", doc.LineCount())
	fmt.Printf("Throughput: %.2f MB/s\n", mbPerSec)
	fmt.Printf("Time:       %v\n", elapsed)
	fmt.Printf("--------------------------------------------------\n")
}
