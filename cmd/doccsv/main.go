// Command doccsv is the CSV/TSV CLI front-end described in §6: a thin
// exit-code shell over the delim package.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/csvquery/docparser/delim"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: doccsv <path.csv|.tsv>")
		os.Exit(1)
	}
	path := os.Args[1]

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext != "csv" && ext != "tsv" {
		fmt.Fprintln(os.Stderr, "error: this parser only accepts .csv or .tsv files")
		os.Exit(2)
	}

	doc, err := delim.Parse(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing CSV: %v\n", err)
		os.Exit(1)
	}
	defer doc.Close()

	fmt.Printf("Document loaded: %d lines\n", doc.LineCount())
	os.Exit(0)
}
