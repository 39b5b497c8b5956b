package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"svlower/internal/ast"
	"svlower/internal/diag"
	"svlower/internal/hir"
	"svlower/internal/source"
	"svlower/internal/trace"
)

// UnitResult is the outcome of lowering one compilation unit.
type UnitResult struct {
	Index  int
	Name   string
	Digest Digest // zero unless a cache was consulted
	// Context holds the lowered HIR; nil when the unit came from a cache.
	Context *hir.Context
	Bag     *diag.Bag
	Nodes   int
	Failed  int
	// Dump is the HIR dump, kept with EmitHIR or a cache.
	Dump   string
	Cached bool
}

// Result collects every unit in bundle order plus their merged diagnostics
// in source order.
type Result struct {
	Units []UnitResult
	Bag   *diag.Bag
	// Errors and Warnings count every reported diagnostic, including the
	// ones the MaxDiagnostics limit dropped from Bag.
	Errors   int
	Warnings int
}

// Failed is the number of nodes that failed to lower across all units.
func (r *Result) Failed() int {
	n := 0
	for i := range r.Units {
		n += r.Units[i].Failed
	}
	return n
}

// Cached is the number of units served from a cache.
func (r *Result) Cached() int {
	n := 0
	for i := range r.Units {
		if r.Units[i].Cached {
			n++
		}
	}
	return n
}

// Lower lowers the units of b in parallel, each with its own hir.Context
// and diagnostic bag. fs must hold the bundle files (see LoadBundle).
// Diagnostics never abort the run; only cancellation or a failure to
// encode a unit for the cache does.
func Lower(ctx context.Context, b *ast.Bundle, fs *source.FileSet, opts Options) (*Result, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	span := trace.Begin(tracer, trace.ScopeDriver, "lower", trace.SpanFromContext(ctx)).
		WithExtra("units", strconv.Itoa(len(b.Units)))
	defer span.End("")

	phase := opts.Timer.Begin("lower")
	res := &Result{Units: make([]UnitResult, len(b.Units))}
	if len(b.Units) > 0 {
		if err := lowerUnits(ctx, b, fs, opts, tracer, span, res.Units); err != nil {
			opts.Timer.End(phase, "aborted")
			return nil, err
		}
	}

	merged := diag.NewBag(0)
	for i := range res.Units {
		merged.Merge(res.Units[i].Bag)
	}
	merged.Sort()
	res.Errors = merged.Count(diag.SevError)
	res.Warnings = merged.Count(diag.SevWarning)
	merged.Truncate(opts.MaxDiagnostics)
	res.Bag = merged
	opts.Timer.End(phase, fmt.Sprintf("%d units, %d cached", len(res.Units), res.Cached()))

	if opts.Timings && opts.Timer != nil {
		report := opts.Timer.Report()
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "lower",
			Units:   len(res.Units),
			Cached:  res.Cached(),
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	return res, nil
}

func lowerUnits(ctx context.Context, b *ast.Bundle, fs *source.FileSet, opts Options, tracer trace.Tracer, parent *trace.Span, out []UnitResult) error {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(b.Units))

	var files Digest
	fingerprint := ""
	if opts.Cache != nil || opts.Memo != nil {
		files = filesDigest(b.Files)
		fingerprint = optionsFingerprint(opts.Lower)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range b.Units {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			u := unitJob{
				bundle:      b,
				index:       i,
				fs:          fs,
				opts:        opts,
				tracer:      tracer,
				parent:      parent,
				files:       files,
				fingerprint: fingerprint,
			}
			r, err := u.run()
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// отмена могла случиться после последнего запуска
	return ctx.Err()
}

type unitJob struct {
	bundle      *ast.Bundle
	index       int
	fs          *source.FileSet
	opts        Options
	tracer      trace.Tracer
	parent      *trace.Span
	files       Digest
	fingerprint string
}

func (u *unitJob) run() (UnitResult, error) {
	name := u.bundle.UnitName(u.index)
	span := trace.Begin(u.tracer, trace.ScopeUnit, "unit:"+name, u.parent)
	phase := u.opts.Timer.Begin(name)
	res := UnitResult{Index: u.index, Name: name}

	useCache := u.opts.Cache != nil || u.opts.Memo != nil
	if useCache {
		key, err := unitDigest(u.bundle.Units[u.index], u.files, u.fingerprint)
		if err != nil {
			span.End("error")
			u.opts.Timer.End(phase, "error")
			return res, fmt.Errorf("%s: %w", name, err)
		}
		res.Digest = key
		if p, ok := u.lookup(key, span); ok {
			res.Nodes, res.Failed, res.Bag, res.Dump = fromPayload(p)
			res.Cached = true
			span.End("cached")
			u.opts.Timer.End(phase, "cached")
			return res, nil
		}
	}

	// unit bags are unbounded, the limit applies to the merged bag
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	// bundles built in code skip DecodeBundle
	var bad *ast.MalformedError
	if err := u.bundle.Units[u.index].Check(); errors.As(err, &bad) {
		diag.ReportError(reporter, diag.IODecodeError, bad.Span, "malformed unit: "+bad.Error()).Emit()
		res.Failed = 1
		res.Bag = bag
		span.End("malformed")
		u.opts.Timer.End(phase, "malformed")
		return res, nil
	}
	lopts := u.opts.Lower
	lopts.Files = u.fs
	lopts.Tracer = u.tracer
	lopts.TraceParent = span
	cx := hir.NewContext(reporter, lopts)
	roots := SeedRoots(cx, u.bundle.Units[u.index], reporter, span)
	res.Failed = cx.LowerAll()
	res.Nodes = cx.Len()
	res.Context = cx
	bag.Sort()
	res.Bag = bag

	if u.opts.EmitHIR || useCache {
		var sb strings.Builder
		if err := hir.Dump(&sb, cx); err == nil {
			res.Dump = sb.String()
		}
	}
	if useCache {
		p := toPayload(&res)
		u.opts.Memo.Put(res.Digest, p)
		if err := u.opts.Cache.Put(res.Digest, p); err != nil {
			span.Point("cache", "write failed: "+err.Error())
		}
	}

	note := fmt.Sprintf("%d roots, %d nodes, %d failed", roots, res.Nodes, res.Failed)
	span.WithExtra("nodes", strconv.Itoa(res.Nodes)).End(note)
	u.opts.Timer.End(phase, note)
	return res, nil
}

// lookup consults the memory cache, then the disk cache. A broken disk
// entry is a miss.
func (u *unitJob) lookup(key Digest, span *trace.Span) (*UnitPayload, bool) {
	if p, ok := u.opts.Memo.Get(key); ok {
		span.Point("cache", "memory hit")
		return p, true
	}
	var p UnitPayload
	ok, err := u.opts.Cache.Get(key, &p)
	if err != nil {
		span.Point("cache", "read failed: "+err.Error())
		return nil, false
	}
	if !ok {
		span.Point("cache", "miss")
		return nil, false
	}
	span.Point("cache", "disk hit")
	u.opts.Memo.Put(key, &p)
	return &p, true
}

// SeedRoots allocates a root identity for every module and package of
// the unit and reports the other top-level items as skipped. It returns
// the number of roots.
func SeedRoots(cx *hir.Context, root *ast.Root, r diag.Reporter, span *trace.Span) int {
	n := 0
	for _, it := range root.Items {
		switch {
		case it == nil:
			continue
		case it.Kind == ast.ItemModule && it.Module != nil:
			cx.AllocRoot(hir.ModuleNode(it.Module))
			n++
		case it.Kind == ast.ItemPackage && it.Package != nil:
			cx.AllocRoot(hir.PackageNode(it.Package))
			n++
		case it.Kind == ast.ItemDummy:
		default:
			diag.ReportWarning(r, diag.LowUnsupportedItem, it.Span,
				fmt.Sprintf("skipping unsupported %s at top level", it.DescFull())).Emit()
			span.Point("skip", it.Kind.String())
		}
	}
	return n
}
