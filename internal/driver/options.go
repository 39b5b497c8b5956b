package driver

import (
	"svlower/internal/hir"
	"svlower/internal/observ"
	"svlower/internal/trace"
)

// Options configures a driver run.
type Options struct {
	// Lower is passed to every unit context. Files, Tracer and TraceParent
	// are filled in by the driver.
	Lower hir.Options
	// MaxDiagnostics bounds the merged bag; <= 0 is unbounded.
	MaxDiagnostics int
	// Jobs limits concurrently lowered units; <= 0 means GOMAXPROCS.
	Jobs int
	// EmitHIR keeps the HIR dump of every unit in the result.
	EmitHIR bool
	// Timings appends an ObsTimings diagnostic with the Timer report.
	Timings bool

	Cache  *DiskCache
	Memo   *MemCache
	Timer  *observ.Timer
	Tracer trace.Tracer
}

// DefaultOptions returns the options used by the CLI without a config file.
func DefaultOptions() Options {
	return Options{
		Lower:          hir.DefaultOptions(),
		MaxDiagnostics: 100,
	}
}
