package vm_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/codegen"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/hir"
	"github.com/rknit/whiskc/internal/lexer"
	"github.com/rknit/whiskc/internal/parser"
	"github.com/rknit/whiskc/internal/sema"
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/trace"
	"github.com/rknit/whiskc/internal/vm"
)

func compile(t *testing.T, src string, fold bool) *bytecode.Program {
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
	if fold {
		hir.FoldModule(res.Module)
	}
	prog, err := codegen.Generate(res.Module, res.Symbols)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return prog
}

func single(code ...bytecode.Inst) *bytecode.Program {
	return &bytecode.Program{
		Funcs: []bytecode.Function{{Name: "main", NumLocals: 2, ReturnsValue: true, Code: code}},
		Entry: 0,
	}
}

func run(t *testing.T, p *bytecode.Program, opts vm.Options) (*vm.State, error) {
	t.Helper()
	return vm.New(p, opts).Run(context.Background())
}

func expectCode(t *testing.T, err error, want vm.Code) *vm.Error {
	t.Helper()
	var vmErr *vm.Error
	if !errors.As(err, &vmErr) {
		t.Fatalf("expected *vm.Error with %s, got %v", want, err)
	}
	if vmErr.Code != want {
		t.Fatalf("code = %s, want %s (%s)", vmErr.Code, want, vmErr.Message)
	}
	return vmErr
}

func TestIfTrueFalseReturns(t *testing.T) {
	tests := []struct {
		cond string
		want int64
	}{
		{"true", 1},
		{"false", 2},
	}
	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			for _, fold := range []bool{false, true} {
				p := compile(t, `func main() int { if `+tt.cond+` { return 1; } else { return 2; } }`, fold)
				st, err := run(t, p, vm.Options{})
				if err != nil {
					t.Fatalf("run: %v", err)
				}
				got, ok := st.Result()
				if !ok || got != vm.Int(tt.want) {
					t.Errorf("fold=%v: result = %v (ok=%v), want %d", fold, got, ok, tt.want)
				}
				if !st.Halted {
					t.Error("machine did not halt")
				}
			}
		})
	}
}

func TestPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"arith", `func main() int { 1 + 2 - 4 }`, "-1"},
		{"locals", `func main() int { let x = 1; let y = x + 2; x = y + y; x }`, "6"},
		{"shadow", `func main() int { let x = 1; let x = x + 10; x }`, "11"},
		{"loop-break", `func main() int { let i = 0; loop { if i == 5 { break; } i = i + 1; } i }`, "5"},
		{"loop-continue", `func main() int {
			let i = 0; let n = 0;
			loop {
				i = i + 1;
				if i > 6 { break; }
				if i == 3 { continue; }
				n = n + i;
			}
			n
		}`, "18"},
		{"else-if", `func sign(x int) int {
			let s = 0;
			if x < 0 { s = 0 - 1; } else if x == 0 { s = 0; } else { s = 1; }
			s
		}
		func main() int { sign(0 - 7) + sign(0) + sign(9) + sign(9) }`, "1"},
		{"recursion", `func sum(n int) int { if n == 0 { return 0; } sum(n - 1) + n }
		func main() int { sum(10) }`, "55"},
		{"mutual", `func even(n int) bool { if n == 0 { return true; } odd(n - 1) }
		func odd(n int) bool { if n == 0 { return false; } even(n - 1) }
		func main() bool { even(10) && !odd(4) }`, "true"},
		{"casts", `func main() int { (true as int) + (0 as bool as int) + (5 as bool as int) }`, "2"},
		{"comparisons", `func main() bool { 1 <= 1 && 2 >= 1 && 1 != 2 && !(1 > 2) && true == true }`, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := compile(t, tt.src, false)
			st, err := run(t, p, vm.Options{})
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			got, ok := st.Result()
			if !ok || got.String() != tt.want {
				t.Errorf("result = %v (ok=%v), want %s", got, ok, tt.want)
			}
		})
	}
}

func TestOutOfRangeJump(t *testing.T) {
	tests := []struct {
		name string
		code []bytecode.Inst
	}{
		{"forward", []bytecode.Inst{bytecode.Jump(bytecode.OpJmp, 10), bytecode.I(bytecode.OpRet)}},
		{"backward", []bytecode.Inst{bytecode.Push(1), bytecode.Jump(bytecode.OpJmp, -5)}},
		{"conditional", []bytecode.Inst{bytecode.PushBool(false), bytecode.Jump(bytecode.OpJmpFalse, 3)}},
		{"fall-off-end", []bytecode.Inst{bytecode.Push(1), bytecode.Jump(bytecode.OpJmp, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, single(tt.code...), vm.Options{})
			e := expectCode(t, err, vm.InvalidJump)
			if e.Func != "main" {
				t.Errorf("Func = %q", e.Func)
			}
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name string
		code []bytecode.Inst
		want vm.Code
	}{
		{"underflow", []bytecode.Inst{bytecode.I(bytecode.OpAdd)}, vm.StackUnderflow},
		{"underflow-ret", []bytecode.Inst{bytecode.I(bytecode.OpRet)}, vm.StackUnderflow},
		{"slot-load", []bytecode.Inst{bytecode.IA(bytecode.OpLoad, 2)}, vm.InvalidSlot},
		{"slot-store", []bytecode.Inst{bytecode.Push(1), bytecode.IA(bytecode.OpStore, -1)}, vm.InvalidSlot},
		{"add-bool", []bytecode.Inst{bytecode.Push(1), bytecode.PushBool(true), bytecode.I(bytecode.OpAdd)}, vm.TypeMismatch},
		{"eq-kinds", []bytecode.Inst{bytecode.Push(1), bytecode.PushBool(true), bytecode.I(bytecode.OpEq)}, vm.TypeMismatch},
		{"jmpfalse-int", []bytecode.Inst{bytecode.Push(0), bytecode.Jump(bytecode.OpJmpFalse, 0)}, vm.TypeMismatch},
		{"not-int", []bytecode.Inst{bytecode.Push(0), bytecode.I(bytecode.OpNot)}, vm.TypeMismatch},
		{"uninit", []bytecode.Inst{bytecode.IA(bytecode.OpLoad, 0), bytecode.I(bytecode.OpToInt)}, vm.TypeMismatch},
		{"bad-call", []bytecode.Inst{bytecode.IA(bytecode.OpCall, 7)}, vm.InvalidFunction},
		{"bad-extern", []bytecode.Inst{bytecode.IA(bytecode.OpCallExtern, 0)}, vm.InvalidFunction},
		{"bad-opcode", []bytecode.Inst{{Op: bytecode.OpInvalid}}, vm.InvalidOpcode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, single(tt.code...), vm.Options{})
			expectCode(t, err, tt.want)
		})
	}
}

func TestCalleeCannotPopCallerOperands(t *testing.T) {
	p := &bytecode.Program{
		Funcs: []bytecode.Function{
			{Name: "main", ReturnsValue: true, Code: []bytecode.Inst{
				bytecode.Push(41), bytecode.IA(bytecode.OpCall, 1), bytecode.I(bytecode.OpRet),
			}},
			{Name: "greedy", ReturnsValue: true, Code: []bytecode.Inst{
				bytecode.I(bytecode.OpPop), bytecode.Push(1), bytecode.I(bytecode.OpRet),
			}},
		},
		Entry: 0,
	}
	_, err := run(t, p, vm.Options{})
	e := expectCode(t, err, vm.StackUnderflow)
	if len(e.Backtrace) != 2 || e.Backtrace[0].Func != "greedy" || e.Backtrace[1].Func != "main" {
		t.Errorf("backtrace = %+v", e.Backtrace)
	}
	if e.Backtrace[1].IP != 1 {
		t.Errorf("caller ip = %d, want 1", e.Backtrace[1].IP)
	}
}

func TestCallStackExhausted(t *testing.T) {
	p := compile(t, `func down(n int) int { down(n + 1) } func main() int { down(0) }`, false)
	_, err := run(t, p, vm.Options{MaxFrames: 64})
	e := expectCode(t, err, vm.CallStackExhausted)
	if len(e.Backtrace) != 64 {
		t.Errorf("backtrace depth = %d, want 64", len(e.Backtrace))
	}
	if !strings.Contains(e.Format(), "backtrace:") {
		t.Errorf("Format() = %q", e.Format())
	}
}

func TestStepLimit(t *testing.T) {
	p := compile(t, `func main() { loop {} }`, false)
	st, err := run(t, p, vm.Options{MaxSteps: 100})
	expectCode(t, err, vm.StepLimit)
	if st.Steps != 100 {
		t.Errorf("steps = %d, want 100", st.Steps)
	}
}

func TestContextCancel(t *testing.T) {
	p := compile(t, `func main() { loop {} }`, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := vm.New(p, vm.Options{}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPrintExtern(t *testing.T) {
	p := compile(t, `extern func print(v int); extern func show(b bool);
	func main() { let i = 0; loop { if i == 3 { break; } print(i); i = i + 1; } show(i == 3); }`, false)
	var out bytes.Buffer
	opts := vm.Options{
		Stdout: &out,
		Externs: map[string]vm.HostFunc{
			"show": vm.DefaultExterns()["print"],
		},
	}
	st, err := run(t, p, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); got != "0\n1\n2\ntrue\n" {
		t.Errorf("stdout = %q", got)
	}
	if _, ok := st.Result(); ok {
		t.Error("unit main left a value on the stack")
	}
}

func TestHostExternResult(t *testing.T) {
	p := compile(t, `extern func twice(v int) int; func main() int { twice(21) }`, false)
	opts := vm.Options{Externs: map[string]vm.HostFunc{
		"twice": func(_ *vm.VM, args []vm.Value) (vm.Value, error) {
			return vm.Int(args[0].I * 2), nil
		},
	}}
	st, err := run(t, p, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, _ := st.Result(); got != vm.Int(42) {
		t.Errorf("result = %v", got)
	}
}

func TestUnknownExtern(t *testing.T) {
	p := compile(t, `extern func launch(); func main() { launch(); }`, false)
	_, err := run(t, p, vm.Options{})
	e := expectCode(t, err, vm.UnknownExtern)
	if !strings.Contains(e.Message, "launch") {
		t.Errorf("message = %q", e.Message)
	}
}

func TestHostExternFailure(t *testing.T) {
	p := compile(t, `extern func fail(); func main() { fail(); }`, false)
	opts := vm.Options{Externs: map[string]vm.HostFunc{
		"fail": func(*vm.VM, []vm.Value) (vm.Value, error) { return vm.Value{}, errors.New("boom") },
	}}
	_, err := run(t, p, opts)
	expectCode(t, err, vm.ExternFailed)
}

func TestNoEntryPoint(t *testing.T) {
	p := compile(t, `func f() int { 1 }`, false)
	_, err := run(t, p, vm.Options{})
	expectCode(t, err, vm.InvalidFunction)

	got, err := vm.New(p, vm.Options{}).Call(context.Background(), "f")
	if err != nil || got != vm.Int(1) {
		t.Errorf("Call(f) = %v, %v", got, err)
	}
}

func TestCallWithArgs(t *testing.T) {
	p := compile(t, `func sub(a int, b int) int { a - b }`, false)
	machine := vm.New(p, vm.Options{})
	got, err := machine.Call(context.Background(), "sub", vm.Int(10), vm.Int(3))
	if err != nil || got != vm.Int(7) {
		t.Errorf("sub(10, 3) = %v, %v", got, err)
	}
	if _, err := machine.Call(context.Background(), "sub", vm.Int(1)); err == nil {
		t.Error("expected arity error")
	}
}

func TestDecodedProgramRuns(t *testing.T) {
	p := compile(t, `func main() int { let a = 40; a + 2 }`, true)
	for _, codec := range []bytecode.Codec{bytecode.CodecMsgpack, bytecode.CodecCBOR} {
		data, err := bytecode.Encode(p, codec)
		if err != nil {
			t.Fatalf("%s encode: %v", codec, err)
		}
		decoded, err := bytecode.Decode(data)
		if err != nil {
			t.Fatalf("%s decode: %v", codec, err)
		}
		st, err := run(t, decoded, vm.Options{})
		if err != nil {
			t.Fatalf("%s run: %v", codec, err)
		}
		if got, _ := st.Result(); got != vm.Int(42) {
			t.Errorf("%s: result = %v", codec, got)
		}
	}
}

func TestRunPublishesSteps(t *testing.T) {
	p := compile(t, `func main() int {
		let i = 0;
		loop { if i == 5000 { break; } i = i + 1; }
		i
	}`, false)
	counters := &trace.Progress{}
	ctx := trace.WithProgress(context.Background(), counters)
	st, err := vm.New(p, vm.Options{}).Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if counters.Steps() != st.Steps || st.Steps == 0 {
		t.Errorf("published steps = %d, state steps = %d", counters.Steps(), st.Steps)
	}
}

func TestInstructionTrace(t *testing.T) {
	p := compile(t, `func main() int { 1 + 2 }`, false)
	var lines bytes.Buffer
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := vm.New(p, vm.Options{Tracer: vm.NewTracer(&lines)}).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := lines.String()
	for _, want := range []string{"[depth=1] __start ip0 Call 0", "[depth=2] main ip2 Add stack=[1 2]", "[halt] stack=[3]"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
	var instrs, funcs int
	for _, ev := range ring.Snapshot() {
		switch ev.Scope {
		case trace.ScopeInstr:
			instrs++
		case trace.ScopeFunc:
			funcs++
		}
	}
	// __start: Call, Hlt; main: Push, Push, Add, Ret
	if instrs != 6 {
		t.Errorf("instr points = %d, want 6", instrs)
	}
	// begin and end for both frames
	if funcs != 4 {
		t.Errorf("func events = %d, want 4", funcs)
	}
}
