package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 9}, Span{File: 1, Start: 2, End: 9}},
		{"reversed", Span{File: 1, Start: 8, End: 9}, Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 2, End: 9}},
		{"nested", Span{File: 1, Start: 0, End: 10}, Span{File: 1, Start: 3, End: 4}, Span{File: 1, Start: 0, End: 10}},
		{"empty tail", Span{File: 1, Start: 0, End: 3}, Span{File: 1, Start: 5, End: 5}, Span{File: 1, Start: 0, End: 5}},
		{"other file ignored", Span{File: 1, Start: 0, End: 3}, Span{File: 2, Start: 5, End: 9}, Span{File: 1, Start: 0, End: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 0, Start: 2, End: 10}
	if !outer.Contains(Span{File: 0, Start: 2, End: 10}) {
		t.Error("span must contain itself")
	}
	if !outer.Contains(Span{File: 0, Start: 10, End: 10}) {
		t.Error("empty span at end must be contained")
	}
	if outer.Contains(Span{File: 0, Start: 1, End: 3}) {
		t.Error("span starting before outer must not be contained")
	}
	if outer.Contains(Span{File: 1, Start: 3, End: 4}) {
		t.Error("span of another file must not be contained")
	}
}

func TestSpanTailAndLen(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 9}
	if s.Len() != 5 || s.Empty() {
		t.Errorf("unexpected Len/Empty for %v", s)
	}
	tail := s.Tail()
	if tail != (Span{File: 3, Start: 9, End: 9}) || !tail.Empty() {
		t.Errorf("Tail() = %v", tail)
	}
	if s.String() != "3:4-9" {
		t.Errorf("String() = %q", s.String())
	}
}
