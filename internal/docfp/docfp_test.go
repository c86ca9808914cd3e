package docfp

import (
	"testing"

	"github.com/csvquery/docparser/internal/index"
)

func TestOfIsDeterministic(t *testing.T) {
	idx := index.Index{{Start: 0, Length: 4}, {Start: 5, Length: 3}}
	a := Of(idx)
	b := Of(index.Index{{Start: 0, Length: 4}, {Start: 5, Length: 3}})
	if a != b {
		t.Fatalf("Of() not deterministic: %d != %d", a, b)
	}
}

func TestOfDiffersOnOrder(t *testing.T) {
	a := Of(index.Index{{Start: 0, Length: 4}, {Start: 5, Length: 3}})
	b := Of(index.Index{{Start: 5, Length: 3}, {Start: 0, Length: 4}})
	if a == b {
		t.Fatal("expected different fingerprints for different record order")
	}
}

func TestOfEmpty(t *testing.T) {
	// Must not panic on an empty index, and must be a fixed value.
	a := Of(index.Index{})
	b := Of(index.Index{})
	if a != b {
		t.Fatal("Of() of empty index not deterministic")
	}
}
