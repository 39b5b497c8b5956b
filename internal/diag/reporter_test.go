package diag

import (
	"testing"
)

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	b := ReportError(r, LowPortDuplicate, sp(0, 20, 21), "port `a` declared multiple times").
		WithNote(sp(0, 5, 6), "previous declaration was here:")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("bag len = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != SevError || d.Code != LowPortDuplicate {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	spans := d.Spans()
	if len(spans) != 2 || spans[1] != sp(0, 5, 6) {
		t.Fatalf("spans = %v", spans)
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewWarning(LowLiteralTooLarge, sp(0, 0, 5), "`8'h1ff` is too large")
	a := base.WithNote(sp(0, 0, 5), "a")
	b := base.WithNote(sp(0, 0, 5), "b")
	if len(base.Notes) != 0 || a.Notes[0].Msg != "a" || b.Notes[0].Msg != "b" {
		t.Fatalf("notes aliased: base=%v a=%v b=%v", base.Notes, a.Notes, b.Notes)
	}
}

func TestCodeIDs(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LowUnimplemented, "LOW1001"},
		{LowPortSignConflict, "LOW1107"},
		{IODecodeError, "IO4002"},
		{ObsTimings, "OBS6001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.ID(); got != tt.want {
				t.Fatalf("ID() = %q, want %q", got, tt.want)
			}
			if tt.code.Title() == "" {
				t.Fatalf("missing title")
			}
		})
	}
}
