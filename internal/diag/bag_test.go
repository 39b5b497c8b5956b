package diag

import (
	"testing"

	"svlower/internal/source"
)

func sp(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := b.Add(NewError(LowUnimplemented, sp(0, uint32(i), uint32(i+1)), "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d, want 2/1", b.Len(), b.Dropped())
	}
}

func TestBagSortIsStable(t *testing.T) {
	b := NewBag(0)
	b.Add(NewWarning(LowLiteralTooLarge, sp(1, 0, 4), "later file"))
	b.Add(NewError(LowPortDuplicate, sp(0, 10, 12), "second"))
	b.Add(NewError(LowPortDuplicate, sp(0, 10, 12), "second again"))
	b.Add(NewWarning(LowUnsupportedItem, sp(0, 2, 3), "first"))
	b.Add(NewError(LowUnimplemented, sp(0, 2, 3), "first error"))
	b.Sort()

	want := []string{"first error", "first", "second", "second again", "later file"}
	got := b.Items()
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Message != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i].Message, want[i])
		}
	}
}

func TestBagMergeAndFilter(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LowUnimplemented, sp(0, 0, 1), "a"))
	other := NewBag(0)
	other.Add(NewWarning(LowUnsupportedItem, sp(0, 1, 2), "b"))
	other.Add(NewWarning(LowUnsupportedItem, sp(0, 2, 3), "c"))
	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("merged len = %d, want 3", a.Len())
	}
	if !a.HasErrors() || !a.HasWarnings() {
		t.Fatalf("expected both errors and warnings")
	}
	if a.Count(SevWarning) != 2 {
		t.Fatalf("warnings = %d, want 2", a.Count(SevWarning))
	}
	a.Filter(func(d Diagnostic) bool { return d.Severity == SevError })
	if a.Len() != 1 || a.Count(SevWarning) != 0 {
		t.Fatalf("filter kept %v", a.Items())
	}
}

func TestBagTruncate(t *testing.T) {
	b := NewBag(0)
	for i := uint32(0); i < 5; i++ {
		b.Add(NewWarning(LowUnsupportedItem, sp(0, i, i+1), "w"))
	}
	b.Truncate(0)
	if b.Len() != 5 {
		t.Fatalf("Truncate(0) len = %d, want 5", b.Len())
	}
	b.Truncate(3)
	if b.Len() != 3 || b.Dropped() != 2 {
		t.Fatalf("len=%d dropped=%d, want 3 and 2", b.Len(), b.Dropped())
	}
	if b.Add(NewWarning(LowUnsupportedItem, sp(0, 9, 10), "late")) {
		t.Fatalf("truncated bag accepted a new diagnostic")
	}
}
