package driver_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"svlower/internal/ast"
	"svlower/internal/diag"
	"svlower/internal/driver"
	"svlower/internal/observ"
	"svlower/internal/source"
	"svlower/internal/testkit"
)

func sp(file int, start, end uint32) source.Span {
	return source.Span{File: source.FileID(file), Start: start, End: end}
}

// bundle builds n units, one file each: `module mI; class C; endclass endmodule`
// with the class at top level so every unit reports one warning.
func bundle(n int) *ast.Bundle {
	b := &ast.Bundle{}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("m%d", i)
		b.Files = append(b.Files, ast.BundleFile{
			Path:    name + ".sv",
			Content: "module " + name + "; endmodule\nclass C; endclass\n",
		})
		b.Units = append(b.Units, &ast.Root{
			Span: sp(i, 0, 40),
			Items: []*ast.Item{
				{
					Kind: ast.ItemModule,
					Span: sp(i, 0, 20),
					Module: &ast.ModuleDecl{
						Span: sp(i, 0, 20),
						Name: ast.Ident{Name: name, Span: sp(i, 7, 9)},
					},
				},
				{Kind: ast.ItemClass, Span: sp(i, 21, 38), Name: &ast.Ident{Name: "C", Span: sp(i, 27, 28)}},
			},
		})
	}
	return b
}

func lowerBundle(t *testing.T, b *ast.Bundle, opts driver.Options) *driver.Result {
	t.Helper()
	fs := source.NewFileSet()
	if err := b.Register(fs); err != nil {
		t.Fatalf("register: %v", err)
	}
	res, err := driver.Lower(context.Background(), b, fs, opts)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	return res
}

func short(bag *diag.Bag) string {
	var sb strings.Builder
	for _, d := range bag.Items() {
		fmt.Fprintf(&sb, "%s %s %s\n", d.Code.ID(), d.Primary, d.Message)
	}
	return sb.String()
}

func TestLowerIsDeterministic(t *testing.T) {
	var want string
	for _, jobs := range []int{1, 2, 8} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			opts := driver.DefaultOptions()
			opts.Jobs = jobs
			res := lowerBundle(t, bundle(6), opts)
			if len(res.Units) != 6 {
				t.Fatalf("units = %d, want 6", len(res.Units))
			}
			for i, u := range res.Units {
				if u.Index != i || u.Context == nil || u.Failed != 0 {
					t.Fatalf("unit %d = %+v", i, u)
				}
				if u.Nodes != 1 {
					t.Fatalf("unit %d nodes = %d, want 1", i, u.Nodes)
				}
				if err := testkit.CheckRibInvariants(u.Context); err != nil {
					t.Fatalf("unit %d: %v", i, err)
				}
			}
			got := short(res.Bag)
			if strings.Count(got, "\n") != 6 {
				t.Fatalf("diagnostics:\n%s", got)
			}
			if want == "" {
				want = got
				return
			}
			if got != want {
				t.Fatalf("jobs=%d order differs:\n%s\nwant:\n%s", jobs, got, want)
			}
		})
	}
	if !strings.HasPrefix(want, "LOW1018 0:21-38 skipping unsupported class declaration `C` at top level\n") {
		t.Fatalf("first diagnostic:\n%s", want)
	}
}

func TestLowerMergedBagLimit(t *testing.T) {
	opts := driver.DefaultOptions()
	opts.MaxDiagnostics = 2
	res := lowerBundle(t, bundle(3), opts)
	if res.Bag.Len() != 2 || res.Bag.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d, want 2 and 1", res.Bag.Len(), res.Bag.Dropped())
	}
	if res.Bag.Items()[1].Primary.File != 1 {
		t.Fatalf("kept %s", short(res.Bag))
	}
}

func TestLowerCancelled(t *testing.T) {
	b := bundle(4)
	fs := source.NewFileSet()
	if err := b.Register(fs); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := driver.Lower(ctx, b, fs, driver.DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res != nil {
		t.Fatalf("result of cancelled run = %+v", res)
	}
}

func TestEmitHIR(t *testing.T) {
	opts := driver.DefaultOptions()
	opts.EmitHIR = true
	res := lowerBundle(t, bundle(1), opts)
	want := "#1 ^0 module Module m0 ports=[] params=[] insts=[] decls=[] procs=[] gens=[] params=[] assigns=[]\n"
	if res.Units[0].Dump != want {
		t.Fatalf("dump = %q, want %q", res.Units[0].Dump, want)
	}
	res = lowerBundle(t, bundle(1), driver.DefaultOptions())
	if res.Units[0].Dump != "" {
		t.Fatalf("dump kept without EmitHIR: %q", res.Units[0].Dump)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := driver.OpenDiskCache("svlower")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	opts := driver.DefaultOptions()
	opts.Cache = cache

	first := lowerBundle(t, bundle(3), opts)
	if first.Cached() != 0 {
		t.Fatalf("cold run served %d units from cache", first.Cached())
	}
	second := lowerBundle(t, bundle(3), opts)
	if second.Cached() != 3 {
		t.Fatalf("warm run cached = %d, want 3", second.Cached())
	}
	for i := range second.Units {
		a, b := first.Units[i], second.Units[i]
		if b.Context != nil {
			t.Fatalf("cached unit %d carries a context", i)
		}
		if a.Digest != b.Digest || a.Digest.IsZero() {
			t.Fatalf("unit %d digests %s / %s", i, a.Digest, b.Digest)
		}
		if a.Dump != b.Dump || a.Nodes != b.Nodes || a.Failed != b.Failed {
			t.Fatalf("unit %d replay differs: %+v vs %+v", i, a, b)
		}
	}
	if short(first.Bag) != short(second.Bag) {
		t.Fatalf("diagnostics differ:\n%s\nvs\n%s", short(first.Bag), short(second.Bag))
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	third := lowerBundle(t, bundle(3), opts)
	if third.Cached() != 0 {
		t.Fatalf("cache survived DropAll: %d", third.Cached())
	}
}

func TestCacheKeyTracksOptionsAndFiles(t *testing.T) {
	memo := driver.NewMemCache(4)
	opts := driver.DefaultOptions()
	opts.Memo = memo

	base := lowerBundle(t, bundle(1), opts)
	if again := lowerBundle(t, bundle(1), opts); again.Cached() != 1 {
		t.Fatalf("memory cache missed")
	}

	opts.Lower.WarnDecimalXZ = false
	other := lowerBundle(t, bundle(1), opts)
	if other.Cached() != 0 || other.Units[0].Digest == base.Units[0].Digest {
		t.Fatalf("option change reused digest %s", base.Units[0].Digest)
	}

	opts.Lower.WarnDecimalXZ = true
	b := bundle(1)
	b.Files[0].Content += "// edited\n"
	edited := lowerBundle(t, b, opts)
	if edited.Cached() != 0 {
		t.Fatalf("file edit reused cached unit")
	}
	if memo.Len() != 3 {
		t.Fatalf("memo holds %d units, want 3", memo.Len())
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := driver.OpenDiskCache("svlower")
	if err != nil {
		t.Fatal(err)
	}
	var key driver.Digest
	key[0] = 0xab
	if err := cache.Put(key, &driver.UnitPayload{Schema: 99, Name: "old"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out driver.UnitPayload
	ok, err := cache.Get(key, &out)
	if err != nil || ok {
		t.Fatalf("Get = %v, %v; want miss", ok, err)
	}
	entries, err := os.ReadDir(filepath.Join(cache.Dir(), "units", "ab"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".mp") {
		t.Fatalf("cache dir holds %v", entries)
	}
}

func TestTimingsDiagnostic(t *testing.T) {
	opts := driver.DefaultOptions()
	opts.MaxDiagnostics = 1
	opts.Timer = observ.NewTimer()
	opts.Timings = true
	res := lowerBundle(t, bundle(2), opts)

	items := res.Bag.Items()
	last := items[len(items)-1]
	if last.Code != diag.ObsTimings || last.Severity != diag.SevInfo {
		t.Fatalf("last diagnostic = %+v", last)
	}
	if !strings.HasPrefix(last.Message, "timings (lower): total ") || !strings.HasSuffix(last.Message, "2 units") {
		t.Fatalf("message = %q", last.Message)
	}
	if len(last.Notes) != 1 || !strings.Contains(last.Notes[0].Msg, `"phases":[`) {
		t.Fatalf("notes = %+v", last.Notes)
	}
	if res.Bag.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", res.Bag.Dropped())
	}
	// lower + one phase per unit
	if n := len(opts.Timer.Report().Phases); n != 3 {
		t.Fatalf("phases = %d, want 3", n)
	}
}

func TestSeedRoots(t *testing.T) {
	b := &ast.Bundle{
		Files: []ast.BundleFile{{Path: "p.sv", Content: "package p; endpackage\n"}},
		Units: []*ast.Root{{
			Span: sp(0, 0, 22),
			Items: []*ast.Item{
				{Kind: ast.ItemPackage, Span: sp(0, 0, 21), Package: &ast.PackageDecl{Span: sp(0, 0, 21), Name: ast.Ident{Name: "p"}}},
				{Kind: ast.ItemDummy, Span: sp(0, 21, 22)},
				{Kind: ast.ItemProgram, Span: sp(0, 21, 22), Name: &ast.Ident{Name: "tb"}},
			},
		}},
	}
	res := lowerBundle(t, b, driver.DefaultOptions())
	if res.Units[0].Nodes != 1 {
		t.Fatalf("nodes = %d, want 1", res.Units[0].Nodes)
	}
	want := "LOW1018 0:21-22 skipping unsupported program `tb` at top level\n"
	if got := short(res.Bag); got != want {
		t.Fatalf("diagnostics = %q, want %q", got, want)
	}
}

func TestLowerReportsMalformedUnit(t *testing.T) {
	b := bundle(2)
	// var_decl item without its payload
	b.Units[1].Items[0].Module.Items = []*ast.Item{{Kind: ast.ItemVarDecl, Span: sp(1, 10, 16)}}
	res := lowerBundle(t, b, driver.DefaultOptions())
	if res.Units[0].Failed != 0 || res.Units[0].Context == nil {
		t.Fatalf("unit 0 = %+v", res.Units[0])
	}
	bad := res.Units[1]
	if bad.Failed != 1 || bad.Context != nil || bad.Nodes != 0 {
		t.Fatalf("unit 1 = %+v", bad)
	}
	if bad.Bag.Len() != 1 {
		t.Fatalf("unit 1 diagnostics:\n%s", short(bad.Bag))
	}
	d := bad.Bag.Items()[0]
	if d.Code != diag.IODecodeError || d.Primary != sp(1, 10, 16) {
		t.Fatalf("diagnostic = %s %s", d.Code.ID(), d.Primary)
	}
	if !strings.HasPrefix(d.Message, "malformed unit: ") || !strings.HasSuffix(d.Message, "lacks `var_decl`") {
		t.Fatalf("message = %q", d.Message)
	}
	if res.Errors != 1 {
		t.Fatalf("errors = %d, want 1", res.Errors)
	}
}

func TestLoadBundle(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "b.json")
	content := `{"files":[{"path":"a.sv","content":"module a; endmodule\n"}],` +
		`"units":[{"span":{"file":0,"start":0,"end":20},"items":[{"kind":"module","span":{"file":0,"start":0,"end":19},` +
		`"module":{"span":{"file":0,"start":0,"end":19},"name":{"name":"a","span":{"file":0,"start":7,"end":8}}}}]}]}`
	if err := os.WriteFile(good, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	b, fs, err := driver.LoadBundle(good)
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	if fs.Len() != 1 || len(b.Units) != 1 || fs.BaseDir() != dir {
		t.Fatalf("files=%d units=%d base=%q", fs.Len(), len(b.Units), fs.BaseDir())
	}
	if err := testkit.CheckSpanInvariants(b.Units[0], fs.Get(0)); err != nil {
		t.Fatalf("loaded unit: %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"files":[],"units":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := driver.LoadBundle(bad); err == nil || !strings.Contains(err.Error(), "bad.json: failed to decode: ") {
		t.Fatalf("bad bundle err = %v", err)
	}

	if _, _, err := driver.LoadBundle(filepath.Join(dir, "missing.mp")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing bundle err = %v", err)
	}
}
