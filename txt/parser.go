// Package txt implements the Text Parser (§4.5): plain-text documents
// indexed on '\n', with a size-based strategy selector for partial
// indexing of very large files.
package txt

import (
	"fmt"

	docparser "github.com/csvquery/docparser"
	"github.com/csvquery/docparser/internal/bitscan"
	"github.com/csvquery/docparser/internal/index"
	"github.com/csvquery/docparser/internal/store"
)

// Validation selects how much UTF-8 checking Parse performs up front
// (§4.3).
type Validation int

const (
	// ValidateLenient checks only the first indexed record — a cheap
	// smoke test — and defers the rest to GetLineSafe at access time.
	// This matches the original txt-parser's one explicit UTF-8 check on
	// line zero ("vérification explicite sur la première ligne").
	ValidateLenient Validation = iota
	// ValidateStrict checks every indexed record and fails fast on the
	// first invalid one.
	ValidateStrict
)

// Options configures ParseWithOptions.
type Options struct {
	Validate Validation
	// Stride selects partial indexing: 1 retains every record, k > 1
	// retains roughly 1/k of them. The counter is chunk-local (§9).
	Stride int
}

const (
	tenGiB    = 10 * 1024 * 1024 * 1024
	hundredGB = 100 * 1024 * 1024 * 1024
)

// SelectStrategy is the size-based convenience selector from §4.5: full
// indexing under 10 GiB, stride 10 000 between 10 and 100 GiB, stride
// 100 000 above that. It is policy, not core, and callers may bypass it by
// calling ParseWithOptions directly with their own Options.
func SelectStrategy(fileSize int64) Options {
	switch {
	case fileSize < tenGiB:
		return Options{Validate: ValidateLenient, Stride: 1}
	case fileSize < hundredGB:
		return Options{Validate: ValidateLenient, Stride: 10_000}
	default:
		return Options{Validate: ValidateLenient, Stride: 100_000}
	}
}

// Parse maps path and builds a full index (stride 1) with lenient
// validation, the Text Parser's baseline behavior.
func Parse(path string) (*docparser.Document, error) {
	return ParseWithOptions(path, Options{Validate: ValidateLenient, Stride: 1})
}

// ParseAuto applies SelectStrategy to path's current size before parsing.
func ParseAuto(path string) (*docparser.Document, error) {
	size, err := store.StatSize(path)
	if err != nil {
		return nil, err
	}
	return ParseWithOptions(path, SelectStrategy(size))
}

// ParseWithOptions maps path, runs the Parallel Line Indexer with the
// requested stride, validates UTF-8 per opts.Validate, and returns a
// Document.
func ParseWithOptions(path string, opts Options) (*docparser.Document, error) {
	if opts.Stride <= 0 {
		opts.Stride = 1
	}

	st, err := store.OpenMapped(path)
	if err != nil {
		return nil, docparser.WrapIOErr(path, err)
	}

	idx, err := bitscan.Index(st.Bytes(), bitscan.Options{Stride: opts.Stride})
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("txt: %w", err)
	}

	if err := validate(st.Bytes(), idx, opts.Validate); err != nil {
		_ = st.Close()
		return nil, err
	}

	return docparser.New(st, idx), nil
}

func validate(data []byte, idx index.Index, mode Validation) error {
	switch mode {
	case ValidateStrict:
		for i, r := range idx {
			if !docparser.ValidUTF8(data[r.Start:r.End()]) {
				return docparser.WrapUTF8Err(fmt.Sprintf("txt: record %d is not valid utf-8", i))
			}
		}
	default:
		if len(idx) > 0 {
			r := idx[0]
			if !docparser.ValidUTF8(data[r.Start:r.End()]) {
				return docparser.WrapUTF8Err("txt: first record is not valid utf-8")
			}
		}
	}
	return nil
}
