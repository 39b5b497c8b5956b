package hir_test

import (
	"bytes"
	"strings"
	"testing"

	"svlower/internal/ast"
	"svlower/internal/hir"
)

func TestDump(t *testing.T) {
	b := &builder{}
	cx, _ := newContext(t)
	m := b.module("top", nil,
		b.varDecl(b.typ(ast.TypeReg), "x"),
		b.proc(ast.ProcInitial, b.assign(b.id("x"), b.id("y"))),
	)
	cx.AllocRoot(hir.ModuleNode(m))

	var before bytes.Buffer
	if err := hir.Dump(&before, cx); err != nil {
		t.Fatal(err)
	}
	if got := before.String(); got != "#1 ^0 module -\n" {
		t.Errorf("dump before lowering = %q", got)
	}

	if failed := cx.LowerAll(); failed != 0 {
		t.Fatalf("%d nodes failed", failed)
	}
	var buf bytes.Buffer
	if err := hir.Dump(&buf, cx); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"#1 ^0 module Module top ports=[] params=[] insts=[] decls=[#3] procs=[#4] gens=[] params=[] assigns=[]",
		"#2 ^1 type Type Builtin logic",
		"#3 ^2 var_decl VarDecl(var) x type=#2 init=#0",
		"#4 ^3 proc Proc initial stmt=#5",
		"#5 ^4 stmt Stmt Assign #6 = #7",
		"#6 ^5 expr Expr Ident x",
		"#7 ^5 expr Expr Ident y",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Errorf("dump mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpMarksFailures(t *testing.T) {
	b := &builder{}
	cx, _ := newContext(t)
	cx.AllocRoot(hir.StmtNode(b.stmt(ast.StmtBreak)))
	cx.LowerAll()
	var buf bytes.Buffer
	if err := hir.Dump(&buf, cx); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "#1 ^0 stmt !failed\n" {
		t.Errorf("dump = %q", got)
	}
}
