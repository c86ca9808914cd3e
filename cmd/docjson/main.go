// Command docjson is the JSON/JSON-Lines CLI front-end described in §6: a
// thin exit-code shell over jsonformat, with an optional --to-jsonl flag
// wired to the real jsonlconv transcoder (§4.8), matching the original
// cli/src/json_main.rs contract.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/csvquery/docparser/jsonformat"
	"github.com/csvquery/docparser/jsonlconv"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: docjson <path.json|.jsonl> [jsonl|stream|simd] [--to-jsonl]")
		os.Exit(1)
	}

	path := os.Args[1]
	var modeArg string
	toJSONL := false
	for _, arg := range os.Args[2:] {
		if arg == "--to-jsonl" {
			toJSONL = true
		} else {
			modeArg = arg
		}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext != "json" && ext != "jsonl" {
		fmt.Fprintln(os.Stderr, "error: this parser only accepts .json or .jsonl files")
		os.Exit(2)
	}

	if toJSONL && ext == "json" {
		jsonlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl"
		result, err := jsonlconv.Convert(path, jsonlPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error converting to JSONL: %v\n", err)
			os.Exit(1)
		}
		if !result.WasArray {
			fmt.Fprintln(os.Stderr, "error: input file's top-level value is not a JSON array")
			os.Exit(1)
		}
		fmt.Printf("Conversion complete: %s -> %s (%d elements)\n", path, jsonlPath, result.ElementsWritten)

		if _, err := jsonformat.ParseValues(jsonlPath, jsonformat.ModeJSONL); err != nil {
			fmt.Fprintf(os.Stderr, "error parsing JSONL: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if ext == "json" {
		// Same cutoff as jsonformat's whole-file ("small") strategy.
		const largeJSONSize = 512 * 1024 * 1024
		if info, err := os.Stat(path); err == nil && info.Size() >= largeJSONSize {
			if format, err := jsonformat.Sniff(path); err == nil && format == jsonformat.Structured {
				fmt.Fprintln(os.Stderr, "warning: large structured JSON file detected; for best performance, convert it to JSON-Lines (--to-jsonl)")
			}
		}
	}

	mode := jsonformat.ModeAuto
	switch modeArg {
	case "jsonl":
		mode = jsonformat.ModeJSONL
	case "stream":
		mode = jsonformat.ModeStream
	case "simd":
		mode = jsonformat.ModeSIMD
	}

	values, err := jsonformat.ParseValues(path, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("JSON loaded: %d objects\n", len(values))
	os.Exit(0)
}
