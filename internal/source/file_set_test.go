package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetDenseIDs(t *testing.T) {
	fs := NewFileSet()

	id0 := fs.AddVirtual("top.sv", []byte("module top; endmodule\n"))
	id1 := fs.AddVirtual("pkg.sv", []byte("package p; endpackage\n"))
	if id0 != 0 || id1 != 1 {
		t.Fatalf("expected dense ids 0,1; got %d,%d", id0, id1)
	}
	if fs.Len() != 2 {
		t.Fatalf("expected 2 files, got %d", fs.Len())
	}
	if _, ok := fs.Lookup(2); ok {
		t.Fatal("lookup past the end must fail")
	}
	if f, ok := fs.GetByPath("pkg.sv"); !ok || f.ID != id1 {
		t.Fatalf("GetByPath: got %v, %v", f, ok)
	}
	if fs.Get(id0).Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	// "a\nb\n" - LineIdx = [1,3]
	id := fs.AddVirtual("a.sv", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("m.sv", []byte("module m;\n  wire a;\nendmodule\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"file start", 0, LineCol{Line: 1, Col: 1}},
		{"newline belongs to its line", 9, LineCol{Line: 1, Col: 10}},
		{"second line", 12, LineCol{Line: 2, Col: 3}},
		{"third line", 20, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("m.sv", []byte("first\nsecond\nthird")))

	for line, want := range map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""} {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.sv")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\n" {
		t.Errorf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if got := f.FormatPath("relative", dir); got != "crlf.sv" {
		t.Errorf("relative path = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "crlf.sv" {
		t.Errorf("basename = %q", got)
	}
}

func TestSnippet(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.sv", []byte("assign a = 8'hff;\n"))

	cases := []struct {
		name string
		span Span
		want string
		ok   bool
	}{
		{"literal", Span{File: id, Start: 11, End: 16}, "8'hff", true},
		{"empty", Span{File: id, Start: 3, End: 3}, "", true},
		{"past end", Span{File: id, Start: 10, End: 99}, "", false},
		{"unknown file", Span{File: id + 1, Start: 0, End: 1}, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := fs.Snippet(tc.span)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("Snippet(%v) = %q, %v; want %q, %v", tc.span, got, ok, tc.want, tc.ok)
			}
		})
	}

	var nilSet *FileSet
	if _, ok := nilSet.Snippet(Span{}); ok {
		t.Fatal("nil file set must not resolve snippets")
	}
}
