package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	decode := tm.Begin("decode")
	time.Sleep(time.Millisecond)
	tm.End(decode, "2 units")
	lower := tm.Begin("lower")
	tm.End(lower, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "decode" || r.Phases[0].Note != "2 units" {
		t.Fatalf("report = %+v", r)
	}
	if r.Phases[0].DurationMS <= 0 || r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("durations: %+v", r)
	}
	s := tm.Summary()
	if !strings.Contains(s, "decode") || !strings.Contains(s, "// 2 units") || !strings.Contains(s, "total") {
		t.Fatalf("summary:\n%s", s)
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("report = %+v", r)
	}
}

func TestNilTimerIsNoop(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("lower")
	if idx != -1 {
		t.Fatalf("Begin on nil timer = %d, want -1", idx)
	}
	tm.End(idx, "")
}
