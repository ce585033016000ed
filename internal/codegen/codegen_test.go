package codegen_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/codegen"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/hir"
	"github.com/rknit/whiskc/internal/lexer"
	"github.com/rknit/whiskc/internal/parser"
	"github.com/rknit/whiskc/internal/sema"
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/symbols"
)

func compile(t *testing.T, src string) *bytecode.Program {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.wsk", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	parsed := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	res, err := sema.Resolve(parsed.File, sema.Options{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	prog, err := codegen.Generate(res.Module, res.Symbols)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := prog.Validate(); err != nil {
		t.Fatalf("invalid program: %v", err)
	}
	return prog
}

func listing(f *bytecode.Function) []string {
	out := make([]string, len(f.Code))
	for i, in := range f.Code {
		out[i] = in.String()
	}
	return out
}

func funcNamed(t *testing.T, p *bytecode.Program, name string) *bytecode.Function {
	t.Helper()
	idx, ok := p.FuncIndex(name)
	if !ok {
		t.Fatalf("no function %s", name)
	}
	return &p.Funcs[idx]
}

func expectCode(t *testing.T, f *bytecode.Function, want ...string) {
	t.Helper()
	if got := listing(f); !slices.Equal(got, want) {
		t.Errorf("%s code mismatch\n got: %q\nwant: %q", f.Name, got, want)
	}
}

func TestIfElseWithReturnsOmitsJump(t *testing.T) {
	p := compile(t, `func main() int { if true { return 1; } else { return 2; } }`)
	expectCode(t, funcNamed(t, p, "main"),
		"PushBool true", "JmpFalse +2", "Push 1", "Ret", "Push 2", "Ret")
}

func TestIfElseSplicesBothJumps(t *testing.T) {
	p := compile(t, `func f(c bool) int { let x = 0; if c { x = 1; } else { x = 2; } x }`)
	f := funcNamed(t, p, "f")
	expectCode(t, f,
		"Push 0", "Store 1",
		"Load 0", "JmpFalse +3",
		"Push 1", "Store 1", "Jmp +2",
		"Push 2", "Store 1",
		"Load 1", "Ret")
	if f.NumLocals != 2 || f.NumParams != 1 || !f.ReturnsValue {
		t.Errorf("header = %+v", f)
	}
}

func TestIfWithoutElse(t *testing.T) {
	p := compile(t, `extern func print(v int); func main() { if 1 < 2 { print(1); } print(2); }`)
	expectCode(t, funcNamed(t, p, "main"),
		"Push 1", "Push 2", "Lt", "JmpFalse +2",
		"Push 1", "CallExtern 0",
		"Push 2", "CallExtern 0",
		"Ret")
}

func TestLoopWithBreak(t *testing.T) {
	p := compile(t, `func main() { let i = 0; loop { if i == 3 { break; } i = i + 1; } }`)
	expectCode(t, funcNamed(t, p, "main"),
		"Push 0", "Store 0",
		"Load 0", "Push 3", "Eq", "JmpFalse +1", "Jmp +5",
		"Load 0", "Push 1", "Add", "Store 0",
		"Jmp -10",
		"Ret")
}

func TestContinueInLoopAtThenStart(t *testing.T) {
	p := compile(t, `func f(c bool) int {
		let n = 0;
		if c {
			loop {
				n = n + 1;
				if n < 3 { continue; }
				break;
			}
		}
		n
	}`)
	f := funcNamed(t, p, "f")
	expectCode(t, f,
		"Push 0", "Store 1",
		"Load 0", "JmpFalse +11",
		"Load 1", "Push 1", "Add", "Store 1",
		"Load 1", "Push 3", "Lt", "JmpFalse +1",
		"Jmp -9",
		"Jmp +1",
		"Jmp -11",
		"Load 1", "Ret")
	for ip, in := range f.Code {
		if in.Op == bytecode.OpJmp && in.A < 0 && in.Target(ip) != 4 {
			t.Errorf("backward jump at %d targets %d, want loop start 4", ip, in.Target(ip))
		}
	}
}

func TestNestedIfElseChain(t *testing.T) {
	p := compile(t, `func sign(x int) int {
		let s = 0;
		if x < 0 { s = 0 - 1; } else if x == 0 { s = 0; } else { s = 1; }
		s
	}`)
	f := funcNamed(t, p, "sign")
	for ip, in := range f.Code {
		if in.Op.IsJump() {
			if t0 := in.Target(ip); t0 <= ip || t0 > len(f.Code) {
				t.Errorf("jump at %d targets %d", ip, t0)
			}
		}
	}
	// every forward Jmp leaving a then block lands on the final Load s
	end := len(f.Code) - 2
	for ip, in := range f.Code {
		if in.Op == bytecode.OpJmp && in.Target(ip) != end {
			t.Errorf("Jmp at %d targets %d, want %d", ip, in.Target(ip), end)
		}
	}
}

func TestSiblingScopesReuseSlots(t *testing.T) {
	p := compile(t, `func main() { { let a = 1; let b = 2; } { let c = 3; } }`)
	if n := funcNamed(t, p, "main").NumLocals; n != 2 {
		t.Errorf("NumLocals = %d, want 2", n)
	}
}

func TestShadowingGetsNewSlot(t *testing.T) {
	p := compile(t, `func main() int { let x = 1; let x = x + 1; x }`)
	expectCode(t, funcNamed(t, p, "main"),
		"Push 1", "Store 0", "Load 0", "Push 1", "Add", "Store 1", "Load 1", "Ret")
}

func TestExpressionStatementPopsValue(t *testing.T) {
	p := compile(t, `func f() int { 1 } func g() {} func main() { f(); g(); }`)
	expectCode(t, funcNamed(t, p, "main"), "Call 0", "Pop", "Call 1", "Ret")
}

func TestEntryStubAndExterns(t *testing.T) {
	p := compile(t, `extern func print(v int); extern func read() int; func main() { print(read()); }`)
	if len(p.Externs) != 2 || p.Externs[1].Name != "read" || !p.Externs[1].ReturnsValue {
		t.Fatalf("externs = %+v", p.Externs)
	}
	main := funcNamed(t, p, "main")
	expectCode(t, main, "CallExtern 1", "CallExtern 0", "Ret")
	if p.Entry < 0 || p.Funcs[p.Entry].Name != bytecode.StartFunc {
		t.Fatalf("entry = %d", p.Entry)
	}
	expectCode(t, &p.Funcs[p.Entry], "Call 0", "Hlt")
}

func TestNoMainNoEntry(t *testing.T) {
	p := compile(t, `func f() int { 1 }`)
	if p.Entry != -1 || len(p.Funcs) != 1 {
		t.Errorf("entry=%d funcs=%d", p.Entry, len(p.Funcs))
	}
}

func TestOperatorsAndCasts(t *testing.T) {
	p := compile(t, `func f(a int, b bool) bool { (-a as bool) && !b || a >= 1 }`)
	expectCode(t, funcNamed(t, p, "f"),
		"Load 0", "Neg", "ToBool", "Load 1", "Not", "And",
		"Load 0", "Push 1", "Ge", "Or", "Ret")
}

func TestBoolToIntCast(t *testing.T) {
	p := compile(t, `func f(b bool) int { b as int + 1 }`)
	expectCode(t, funcNamed(t, p, "f"), "Load 0", "ToInt", "Push 1", "Add", "Ret")
}

func TestUnboundVariableIsFatal(t *testing.T) {
	tbl := symbols.NewTable()
	m := &hir.Module{Funcs: []*hir.Func{{
		ID: 1, Name: "main", Result: tbl.Unit,
		Body: &hir.Block{Stmts: []hir.Stmt{{
			Kind: hir.StmtExpr,
			Data: hir.ExprStmtData{Expr: &hir.Expr{Kind: hir.ExprVar, Type: tbl.Int, Data: hir.VarData{Var: 42, Name: "ghost"}}},
		}}},
	}}}
	_, err := codegen.Generate(m, tbl)
	var cgErr *codegen.Error
	if !errors.As(err, &cgErr) || cgErr.Kind != codegen.ErrUnboundVar {
		t.Fatalf("err = %v", err)
	}
}

func TestUnknownFunctionIsFatal(t *testing.T) {
	tbl := symbols.NewTable()
	m := &hir.Module{Funcs: []*hir.Func{{
		ID: 1, Name: "main", Result: tbl.Unit,
		Body: &hir.Block{Stmts: []hir.Stmt{{
			Kind: hir.StmtExpr,
			Data: hir.ExprStmtData{Expr: &hir.Expr{Kind: hir.ExprCall, Type: tbl.Unit, Data: hir.CallData{Func: 9, Name: "nowhere"}}},
		}}},
	}}}
	_, err := codegen.Generate(m, tbl)
	var cgErr *codegen.Error
	if !errors.As(err, &cgErr) || cgErr.Kind != codegen.ErrUnknownFunc {
		t.Fatalf("err = %v", err)
	}
}
