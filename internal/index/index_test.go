package index

import "testing"

func TestRecordEnd(t *testing.T) {
	r := Record{Start: 10, Length: 5}
	if got := r.End(); got != 15 {
		t.Fatalf("End() = %d, want 15", got)
	}
}

func TestIndexValid(t *testing.T) {
	cases := []struct {
		name    string
		idx     Index
		dataLen int
		want    bool
	}{
		{"empty", Index{}, 0, true},
		{"single in bounds", Index{{Start: 0, Length: 4}}, 4, true},
		{"ascending non-overlapping", Index{{Start: 0, Length: 4}, {Start: 5, Length: 3}}, 8, true},
		{"adjacent ok", Index{{Start: 0, Length: 4}, {Start: 4, Length: 3}}, 7, true},
		{"overlap rejected", Index{{Start: 0, Length: 4}, {Start: 2, Length: 3}}, 5, false},
		{"out of bounds rejected", Index{{Start: 0, Length: 10}}, 5, false},
		{"out of order rejected", Index{{Start: 5, Length: 2}, {Start: 0, Length: 2}}, 7, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.idx.Valid(c.dataLen); got != c.want {
				t.Fatalf("Valid(%d) = %v, want %v", c.dataLen, got, c.want)
			}
		})
	}
}

func TestIndexLen(t *testing.T) {
	idx := Index{{Start: 0, Length: 1}, {Start: 2, Length: 1}}
	if got := idx.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}
