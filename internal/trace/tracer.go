package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives span and point events from the driver and the lowering
// context. Emit is called from every unit worker concurrently.
type Tracer interface {
	Emit(ev *Event)
	// Close writes out anything buffered and releases the output.
	Close() error
	Level() Level
}

// StorageMode is the --trace-mode value.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // write as emitted
	ModeRing                          // keep the last RingSize events, write on Close
	ModeBoth
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if m > 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode reads a --trace-mode value; empty means stream.
func ParseMode(s string) (StorageMode, error) {
	if s == "" {
		return ModeStream, nil
	}
	for m := ModeStream; int(m) < len(modeNames); m++ {
		if strings.EqualFold(s, modeNames[m]) {
			return m, nil
		}
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config is what setupTracing assembles from the trace flags.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto picks by OutputPath extension
	Output     io.Writer // overrides OutputPath
	OutputPath string    // "-" or "" for stderr
	RingSize   int       // default 4096
}

// New builds the tracer for cfg; LevelOff yields Nop without touching
// the output.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}
	if cfg.Mode == 0 {
		cfg.Mode = ModeStream
	}
	if cfg.Mode > ModeBoth {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case ModeRing:
		ring := NewRingTracer(cfg.RingSize, cfg.Level)
		ring.dumpTo, ring.dumpFormat = w, format
		return ring, nil
	case ModeBoth:
		// кольцо здесь только для Snapshot, поток уже пишет в w
		stream := NewStreamTracer(w, cfg.Level, format)
		return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// closeOutput closes w unless it is a standard stream.
func closeOutput(w io.Writer) error {
	if w == os.Stderr || w == os.Stdout {
		return nil
	}
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
