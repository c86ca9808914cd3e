// Package jsonformat implements the JSON Dispatcher (§4.7): format
// sniffing, parallel JSON-Lines parsing, streaming parse for a single
// large structured value, and Document normalization for JSON arrays.
//
// Two JSON codecs are wired in on purpose: github.com/goccy/go-json is the
// "high-performance in-place parser" the spec calls for in the JSON-Lines
// parallel strategy, and encoding/json is its documented "reference parser
// fallback" for a line goccy rejects — goccy aims for byte-for-byte
// compatibility with encoding/json but is not a certified drop-in, so a
// second, conservative decode gives a line a fair second chance before the
// whole call fails (§7: "the first line-level failure fails the whole
// call").
package jsonformat

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	gojson "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	docparser "github.com/csvquery/docparser"
	"github.com/csvquery/docparser/internal/bitscan"
	"github.com/csvquery/docparser/internal/store"
)

// Format is the result of Sniff (§4.7).
type Format int

const (
	// LineOriented means the file is (or is assumed to be) JSON-Lines.
	LineOriented Format = iota
	// Structured means the first non-whitespace byte is '[' or '{'.
	Structured
)

// Mode lets a caller force one of the dispatcher's strategies instead of
// the size/sniff-driven state machine in ParseValues (§4.7, "Explicit
// modes").
type Mode int

const (
	// ModeAuto runs the full state machine from §4.7.
	ModeAuto Mode = iota
	// ModeJSONL forces the parallel JSON-Lines strategy.
	ModeJSONL
	// ModeStream forces the streaming structured-value strategy.
	ModeStream
	// ModeSIMD forces the JSON-Lines strategy without the reference-parser
	// fallback: every line must decode with goccy/go-json alone.
	ModeSIMD
)

// smallFileThreshold is the §4.7 "Small" strategy cutoff.
const smallFileThreshold = 512 * 1024 * 1024

// sniffWindow is how many leading bytes Sniff inspects.
const sniffWindow = 32

// Sniff reads the first ≤32 bytes of path, skips leading whitespace, and
// classifies the file as Structured ('[' or '{' first) or LineOriented
// otherwise (§4.7).
func Sniff(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, docparser.WrapIOErr(path, err)
	}
	defer f.Close()

	buf := make([]byte, sniffWindow)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		if errors.Is(err, io.EOF) {
			return LineOriented, nil
		}
		return 0, docparser.WrapIOErr(path, err)
	}
	buf = buf[:n]

	i := 0
	for i < len(buf) && isJSONWhitespace(buf[i]) {
		i++
	}
	if i < len(buf) && (buf[i] == '[' || buf[i] == '{') {
		return Structured, nil
	}
	return LineOriented, nil
}

func isJSONWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// ParseValues runs the dispatcher (§4.7 state machine, or a forced
// strategy per mode) and returns the decoded JSON values in input order.
func ParseValues(path string, mode Mode) ([]any, error) {
	switch mode {
	case ModeJSONL:
		return parseJSONLParallel(path, true)
	case ModeSIMD:
		return parseJSONLParallel(path, false)
	case ModeStream:
		v, err := parseStreaming(path)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	default:
		return parseAuto(path)
	}
}

func parseAuto(path string) ([]any, error) {
	size, err := store.StatSize(path)
	if err != nil {
		return nil, err
	}

	if size < smallFileThreshold {
		return parseSmall(path)
	}

	format, err := Sniff(path)
	if err != nil {
		return nil, err
	}

	if format == Structured {
		v, err := parseStreaming(path)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	}

	values, err := parseJSONLParallel(path, true)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		return values, nil
	}
	v, err := parseStreaming(path)
	if err != nil {
		return nil, err
	}
	return []any{v}, nil
}

// parseSmall implements the §4.7 "Small" strategy: load the whole file; if
// it has more than one non-empty line, treat it as JSON-Lines, otherwise
// parse the whole content as one value.
func parseSmall(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, docparser.WrapIOErr(path, err)
	}

	lines := nonEmptyLines(data)
	if len(lines) > 1 {
		values := make([]any, len(lines))
		for i, line := range lines {
			v, err := decodeLine(line, true)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	}

	v, err := decodeLine(bytes.TrimSpace(data), true)
	if err != nil {
		return nil, err
	}
	return []any{v}, nil
}

func nonEmptyLines(data []byte) [][]byte {
	var out [][]byte
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimRight(line, "\r")
		if len(bytes.TrimSpace(line)) > 0 {
			out = append(out, line)
		}
	}
	return out
}

// parseJSONLParallel memory-maps path, splits it into non-empty lines, and
// parses each line in parallel (§4.7 "JSON-Lines, parallel"). withFallback
// selects whether a goccy failure gets a second attempt with encoding/json
// (true for the default JSONL strategy, false for ModeSIMD).
func parseJSONLParallel(path string, withFallback bool) ([]any, error) {
	st, err := store.OpenMapped(path)
	if err != nil {
		return nil, docparser.WrapIOErr(path, err)
	}
	defer st.Close()

	lines := nonEmptyLines(st.Bytes())
	values := make([]any, len(lines))
	if len(lines) == 0 {
		return values, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(lines) {
		workers = len(lines)
	}
	if workers < 1 {
		workers = 1
	}
	perWorker := (len(lines) + workers - 1) / workers

	g := new(errgroup.Group)
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > len(lines) {
			end = len(lines)
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				v, err := decodeLine(lines[i], withFallback)
				if err != nil {
					return err
				}
				values[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}

// decodeLine parses one JSON-Lines record, preferring goccy/go-json's
// in-place decode and falling back to a fresh copy decoded with
// encoding/json when withFallback is set and goccy rejects the line (§4.7:
// "preferring a high-performance in-place parser with a copy-to-local-
// buffer fallback to a reference parser on failure").
func decodeLine(line []byte, withFallback bool) (any, error) {
	var v any
	if err := gojson.Unmarshal(line, &v); err == nil {
		return v, nil
	} else if !withFallback {
		return nil, docparser.WrapJSONSyntaxErr(err)
	}

	buf := make([]byte, len(line))
	copy(buf, line)
	if err := json.Unmarshal(buf, &v); err != nil {
		return nil, docparser.WrapJSONSyntaxErr(err)
	}
	return v, nil
}

// parseStreaming builds an incremental decoder over a buffered reader and
// decodes a single JSON value (§4.7 "Structured, streaming").
func parseStreaming(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, docparser.WrapIOErr(path, err)
	}
	defer f.Close()

	dec := gojson.NewDecoder(bufio.NewReader(f))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, docparser.WrapJSONSyntaxErr(err)
	}
	return v, nil
}

// ParseDocument runs the dispatcher and normalizes the result into a
// Document (§4.7 "Document normalization"): a single-element result whose
// sole element is a JSON array is flattened to its elements, each element
// is re-serialized to canonical JSON text, and the texts are concatenated
// with '\n' into a fresh owned buffer indexed at stride 1.
func ParseDocument(path string, mode Mode) (*docparser.Document, error) {
	values, err := ParseValues(path, mode)
	if err != nil {
		return nil, err
	}

	if len(values) == 1 {
		if arr, ok := values[0].([]any); ok {
			values = arr
		}
	}

	var buf bytes.Buffer
	for _, v := range values {
		b, err := gojson.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("jsonformat: re-encode element: %w", err)
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}

	data := buf.Bytes()
	idx, err := bitscan.Index(data, bitscan.Options{Stride: 1})
	if err != nil {
		return nil, fmt.Errorf("jsonformat: %w", err)
	}

	return docparser.New(store.FromBuffer(data), idx), nil
}
