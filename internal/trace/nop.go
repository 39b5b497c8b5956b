package trace

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }

// Nop is the package-level no-op tracer.
var Nop Tracer = nopTracer{}
