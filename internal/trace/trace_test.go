package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
	}{
		{LevelPhase, []string{"begin unit", "end unit"}},
		{LevelDetail, []string{"begin unit", "begin module", "end module", "end unit"}},
		{LevelDebug, []string{"begin unit", "begin module", "begin node", "end node", "end module", "end unit"}},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			ring := NewRingTracer(16, tt.level)
			unit := Begin(ring, ScopeUnit, "unit", nil)
			mod := Begin(ring, ScopeModule, "module", unit)
			node := Begin(ring, ScopeNode, "node", mod)
			node.End("")
			mod.End("")
			unit.End("")

			var got []string
			for _, ev := range ring.Snapshot() {
				got = append(got, ev.Kind.String()+" "+ev.Name)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("events = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanNesting(t *testing.T) {
	ring := NewRingTracer(8, LevelDebug)
	outer := Begin(ring, ScopeModule, "lower:module", nil)
	inner := Begin(ring, ScopeNode, "lower:port", outer)
	inner.Point("skip", "unsupported item")
	inner.End("ok")
	outer.End("")

	evs := ring.Snapshot()
	if len(evs) != 5 {
		t.Fatalf("got %d events", len(evs))
	}
	if evs[1].ParentID != outer.ID() || evs[1].Depth != 1 {
		t.Fatalf("inner begin = %+v", evs[1])
	}
	if evs[2].Kind != KindPoint || evs[2].Depth != 2 {
		t.Fatalf("point = %+v", evs[2])
	}
	for i, ev := range evs {
		if ev.Seq != uint64(i+1) {
			t.Fatalf("event %d seq = %d", i, ev.Seq)
		}
	}
}

func TestRingWraps(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: name})
	}
	evs := ring.Snapshot()
	if len(evs) != 2 || evs[0].Name != "b" || evs[1].Name != "c" {
		t.Fatalf("snapshot = %+v", evs)
	}
}

func TestFormatText(t *testing.T) {
	origin := time.Unix(100, 0)
	ev := &Event{
		Time:   origin.Add(1500 * time.Microsecond),
		Kind:   KindSpanEnd,
		Scope:  ScopeModule,
		Depth:  1,
		Name:   "lower:module",
		Detail: "m",
		Extra:  map[string]string{"ports": "2", "items": "5"},
	}
	got := string(FormatEvent(ev, FormatText, origin))
	want := "[+    1.500ms]   ← lower:module (m) {items=5, ports=2}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)
	s := Begin(FromContext(ctx), ScopeDriver, "lower", nil)
	s.End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"kind":"begin"`) || !strings.Contains(lines[1], `"seq":2`) {
		t.Fatalf("output:\n%s", buf.String())
	}
}

func TestParsers(t *testing.T) {
	levels := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"", LevelOff, true},
		{"DETAIL", LevelDetail, true},
		{"debug", LevelDebug, true},
		{"error", LevelOff, false},
		{"loud", LevelOff, false},
	}
	for _, tt := range levels {
		t.Run("level/"+tt.in, func(t *testing.T) {
			l, err := ParseLevel(tt.in)
			if (err == nil) != tt.ok || l != tt.want {
				t.Fatalf("ParseLevel(%q) = %v, %v", tt.in, l, err)
			}
			if tt.ok && tt.in != "" && l.String() != strings.ToLower(tt.in) {
				t.Fatalf("String() = %q", l.String())
			}
		})
	}
	modes := []struct {
		in   string
		want StorageMode
		ok   bool
	}{
		{"", ModeStream, true},
		{"Ring", ModeRing, true},
		{"both", ModeBoth, true},
		{"disk", ModeStream, false},
	}
	for _, tt := range modes {
		t.Run("mode/"+tt.in, func(t *testing.T) {
			if m, err := ParseMode(tt.in); (err == nil) != tt.ok || m != tt.want {
				t.Fatalf("ParseMode(%q) = %v, %v", tt.in, m, err)
			}
		})
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
}

func TestRingModeWritesOnClose(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeRing, Format: FormatNDJSON, Output: &buf, RingSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"unit:a", "unit:b"} {
		Begin(tr, ScopeUnit, name, nil).End("")
	}
	if buf.Len() != 0 {
		t.Fatalf("ring wrote before Close:\n%s", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"seq":3`) || !strings.Contains(lines[1], `"name":"unit:b"`) {
		t.Fatalf("output:\n%s", buf.String())
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff, OutputPath: t.TempDir() + "/never.ndjson"})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	if Begin(tr, ScopeDriver, "lower", nil).ID() != 0 {
		t.Fatal("span under Nop has an id")
	}
}
