package trace

import (
	"io"
	"sync"
	"time"
)

// RingTracer holds the most recent events of a run in memory. With
// --trace-mode=ring the buffer is written out on Close.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	next   int // slot of the next event
	full   bool
	level  Level
	origin time.Time
	seq    uint64

	dumpTo     io.Writer // nil keeps the buffer in memory only
	dumpFormat Format
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, capacity), level: level, origin: time.Now()}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.events[t.next] = *ev
	t.events[t.next].Seq = t.seq
	t.next++
	if t.next == len(t.events) {
		t.next, t.full = 0, true
	}
}

// Snapshot returns the buffered events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.full {
		return append([]Event(nil), t.events[:t.next]...)
	}
	return append(append(make([]Event, 0, len(t.events)), t.events[t.next:]...), t.events[:t.next]...)
}

func (t *RingTracer) Close() error {
	if t.dumpTo == nil {
		return nil
	}
	for _, ev := range t.Snapshot() {
		if _, err := t.dumpTo.Write(FormatEvent(&ev, t.dumpFormat, t.origin)); err != nil {
			return err
		}
	}
	return closeOutput(t.dumpTo)
}

func (t *RingTracer) Level() Level { return t.level }
