// Package jsonlconv implements the JSON → JSON-Lines Transcoder (§4.8):
// given a path to a JSON file whose top-level value is an array, it
// writes a new file where each line is the canonical text form of one
// array element followed by '\n'.
//
// This is an external collaborator per §1/§4.8 — out of the core's scope
// beyond its I/O contract — but the contract is concrete enough to give
// it a real, tested implementation here, the way the teacher's
// internal/writer is a fully real CSV writer even though the end-user CLI
// wiring around it is a thin main.go.
package jsonlconv

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"

	gojson "github.com/goccy/go-json"

	docparser "github.com/csvquery/docparser"
)

// Result reports what Convert did.
type Result struct {
	// WasArray is false when the input's top-level value is not a JSON
	// array — the §4.8 soft-fail: no output file is written, and Convert
	// returns a nil error alongside WasArray == false.
	WasArray bool
	// ElementsWritten is the number of array elements written as lines.
	ElementsWritten int
}

// Convert reads inputPath, a JSON file, and writes outputPath as
// JSON-Lines if and only if the top-level value is an array.
func Convert(inputPath, outputPath string) (Result, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return Result{}, docparser.WrapIOErr(inputPath, err)
	}
	defer in.Close()

	dec := gojson.NewDecoder(bufio.NewReader(in))
	tok, err := dec.Token()
	if err != nil {
		return Result{}, docparser.WrapJSONSyntaxErr(err)
	}
	delim, ok := tok.(gojson.Delim)
	if !ok || delim.String() != "[" {
		return Result{WasArray: false}, nil
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return Result{}, docparser.WrapIOErr(outputPath, err)
	}
	defer out.Close()

	w := bufio.NewWriterSize(out, 256*1024)
	count := 0
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Result{}, docparser.WrapJSONSyntaxErr(err)
		}
		compact, err := compactJSON(raw)
		if err != nil {
			return Result{}, docparser.WrapJSONSyntaxErr(err)
		}
		if _, err := w.Write(compact); err != nil {
			return Result{}, docparser.WrapIOErr(outputPath, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return Result{}, docparser.WrapIOErr(outputPath, err)
		}
		count++
	}
	if err := w.Flush(); err != nil {
		return Result{}, docparser.WrapIOErr(outputPath, err)
	}

	return Result{WasArray: true, ElementsWritten: count}, nil
}

func compactJSON(raw json.RawMessage) ([]byte, error) {
	var dst bytes.Buffer
	if err := json.Compact(&dst, raw); err != nil {
		return nil, err
	}
	return dst.Bytes(), nil
}
