package jsonlconv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertArray(t *testing.T) {
	in := writeTemp(t, "in.json", `[{"a": 1, "b":  2}, {"a":3,"b":4}]`)
	out := filepath.Join(filepath.Dir(in), "out.jsonl")

	result, err := Convert(in, out)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !result.WasArray {
		t.Fatal("WasArray = false, want true")
	}
	if result.ElementsWritten != 2 {
		t.Fatalf("ElementsWritten = %d, want 2", result.ElementsWritten)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != `{"a":1,"b":2}` {
		t.Fatalf("line 0 = %q, want compact canonical JSON", lines[0])
	}
}

func TestConvertNonArraySoftFails(t *testing.T) {
	in := writeTemp(t, "obj.json", `{"a": 1}`)
	out := filepath.Join(filepath.Dir(in), "obj.jsonl")

	result, err := Convert(in, out)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if result.WasArray {
		t.Fatal("WasArray = true, want false for a top-level object")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Fatal("expected no output file to be written for a non-array input")
	}
}

func TestConvertEmptyArray(t *testing.T) {
	in := writeTemp(t, "empty.json", `[]`)
	out := filepath.Join(filepath.Dir(in), "empty.jsonl")

	result, err := Convert(in, out)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !result.WasArray || result.ElementsWritten != 0 {
		t.Fatalf("result = %+v, want WasArray=true, ElementsWritten=0", result)
	}
}

func TestConvertMissingInput(t *testing.T) {
	_, err := Convert(filepath.Join(t.TempDir(), "nope.json"), filepath.Join(t.TempDir(), "out.jsonl"))
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestConvertMalformedJSON(t *testing.T) {
	in := writeTemp(t, "broken.json", `[{"a": 1,}]`)
	out := filepath.Join(filepath.Dir(in), "broken.jsonl")

	_, err := Convert(in, out)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
