// Package delim implements the Delimited (CSV/TSV) Parser (§4.6): the same
// indexing as txt, with a trailing '\r' trimmed from every record and an
// advisory separator-detection helper. Records are whole lines — fields
// are never tokenized (§1 Non-goals, §9.4).
package delim

import (
	"fmt"

	docparser "github.com/csvquery/docparser"
	"github.com/csvquery/docparser/internal/bitscan"
	"github.com/csvquery/docparser/internal/store"

	"github.com/csvquery/docparser/txt"
)

// Options mirrors txt.Options; delim always scans with TrimCR enabled.
type Options struct {
	Validate txt.Validation
	Stride   int
}

// sniffWindow is the advisory separator-detection sample size (§4.6).
const sniffWindow = 4 * 1024

// Parse maps path and builds a full index (stride 1) with lenient UTF-8
// validation, trimming a trailing '\r' from each record.
func Parse(path string) (*docparser.Document, error) {
	return ParseWithOptions(path, Options{Validate: txt.ValidateLenient, Stride: 1})
}

// ParseWithOptions maps path, indexes it with TrimCR enabled, validates
// UTF-8 per opts.Validate, and returns a Document.
func ParseWithOptions(path string, opts Options) (*docparser.Document, error) {
	if opts.Stride <= 0 {
		opts.Stride = 1
	}

	st, err := store.OpenMapped(path)
	if err != nil {
		return nil, docparser.WrapIOErr(path, err)
	}

	idx, err := bitscan.Index(st.Bytes(), bitscan.Options{Stride: opts.Stride, TrimCR: true})
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("delim: %w", err)
	}

	data := st.Bytes()
	switch opts.Validate {
	case txt.ValidateStrict:
		for i, r := range idx {
			if !docparser.ValidUTF8(data[r.Start:r.End()]) {
				_ = st.Close()
				return nil, docparser.WrapUTF8Err("delim: record %d is not valid utf-8", i)
			}
		}
	default:
		if len(idx) > 0 {
			r := idx[0]
			if !docparser.ValidUTF8(data[r.Start:r.End()]) {
				_ = st.Close()
				return nil, docparser.WrapUTF8Err("delim: first record is not valid utf-8")
			}
		}
	}

	return docparser.New(st, idx), nil
}

// DetectSeparator inspects the first ≤4 KiB of data and returns ',' or
// '\t' (§4.6): tabs win only if they strictly outnumber commas in the
// sample. Detection is advisory only — the indexer never tokenizes
// fields, so this has no effect on how records are produced; it exists
// for callers that want to know which separator a file likely uses,
// mirroring the teacher's Scanner.readHeaders/detectSeparator contract in
// internal/indexer/scanner.go.
func DetectSeparator(data []byte) byte {
	sample := data
	if len(sample) > sniffWindow {
		sample = sample[:sniffWindow]
	}
	var commas, tabs int
	for _, b := range sample {
		switch b {
		case ',':
			commas++
		case '\t':
			tabs++
		}
	}
	if tabs > commas {
		return '\t'
	}
	return ','
}
