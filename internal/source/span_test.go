package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{"disjoint", Span{File: 1, Start: 10, End: 20}, Span{File: 1, Start: 30, End: 40}, Span{File: 1, Start: 10, End: 40}},
		{"nested", Span{File: 1, Start: 10, End: 40}, Span{File: 1, Start: 15, End: 20}, Span{File: 1, Start: 10, End: 40}},
		{"other file ignored", Span{File: 1, Start: 10, End: 20}, Span{File: 2, Start: 0, End: 99}, Span{File: 1, Start: 10, End: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpanContainsAndBefore(t *testing.T) {
	outer := Span{File: 0, Start: 5, End: 50}
	inner := Span{File: 0, Start: 10, End: 12}
	if !outer.Contains(inner) || inner.Contains(outer) {
		t.Error("Contains is wrong")
	}
	if !inner.Before(Span{File: 0, Start: 11, End: 11}) {
		t.Error("earlier start must sort first")
	}
	if !(Span{File: 0, Start: 99}).Before(Span{File: 1, Start: 0}) {
		t.Error("file id dominates ordering")
	}
	if (Span{Start: 3, End: 3}).Len() != 0 || !(Span{Start: 3, End: 3}).Empty() {
		t.Error("empty span")
	}
}
