package jsonformat

import (
	"bufio"
	"os"

	gojson "github.com/goccy/go-json"

	docparser "github.com/csvquery/docparser"
)

// Iter returns a one-shot, low-memory iterator over the JSON values in
// path — either the elements of a top-level array (streamed, without
// building a full []any first) or the records of a JSON-Lines file.
//
// This is the Go descendant of the original source's iter_objects, a
// feature the spec.md distillation dropped in favor of ParseValues'
// eager []any. It is additive: ParseValues/ParseDocument semantics are
// unchanged.
func Iter(path string) (func(yield func(any, error) bool), error) {
	format, err := Sniff(path)
	if err != nil {
		return nil, err
	}

	if format == Structured {
		return iterArray(path), nil
	}
	return iterJSONL(path), nil
}

func iterArray(path string) func(yield func(any, error) bool) {
	return func(yield func(any, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(nil, docparser.WrapIOErr(path, err))
			return
		}
		defer f.Close()

		dec := gojson.NewDecoder(bufio.NewReader(f))
		if _, err := dec.Token(); err != nil { // consume leading '['
			yield(nil, docparser.WrapJSONSyntaxErr(err))
			return
		}
		for dec.More() {
			var v any
			if err := dec.Decode(&v); err != nil {
				if !yield(nil, docparser.WrapJSONSyntaxErr(err)) {
					return
				}
				continue
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

func iterJSONL(path string) func(yield func(any, error) bool) {
	return func(yield func(any, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(nil, docparser.WrapIOErr(path, err))
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(bytesTrimSpace(line)) == 0 {
				continue
			}
			var v any
			if err := gojson.Unmarshal(line, &v); err != nil {
				if !yield(nil, docparser.WrapJSONSyntaxErr(err)) {
					return
				}
				continue
			}
			if !yield(v, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(nil, docparser.WrapIOErr(path, err))
		}
	}
}

func bytesTrimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && isJSONWhitespace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isJSONWhitespace(b[end-1]) {
		end--
	}
	return b[start:end]
}
