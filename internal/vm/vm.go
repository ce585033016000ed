package vm

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/trace"
)

// DefaultMaxFrames is the call depth used when Options.MaxFrames is zero.
const DefaultMaxFrames = 1024

// cancelCheckInterval is how many steps run between context checks.
const cancelCheckInterval = 256

// Options configures VM execution.
type Options struct {
	MaxFrames int    // call depth limit; 0 means DefaultMaxFrames
	MaxSteps  uint64 // 0 means unlimited
	Stdout    io.Writer
	Externs   map[string]HostFunc // merged over DefaultExterns
	Tracer    *Tracer             // per-instruction trace, nil to disable
}

// State is the machine state after a run.
type State struct {
	Stack  []Value
	Halted bool
	Steps  uint64
}

// Result returns the value left on top of the stack, if any.
func (s *State) Result() (Value, bool) {
	if s == nil || len(s.Stack) == 0 {
		return Value{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// VM is a bytecode interpreter for one Program.
type VM struct {
	prog    *bytecode.Program
	opts    Options
	externs map[string]HostFunc

	stack  []Value
	frames []Frame
	halted bool
	steps  uint64
	curIP  int

	tr        trace.Tracer
	runSpan   uint64
	traceFunc bool
	traceInst bool

	eb *errorBuilder
}

// New creates a VM for prog.
func New(prog *bytecode.Program, opts Options) *VM {
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = DefaultMaxFrames
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	externs := DefaultExterns()
	for name, fn := range opts.Externs {
		externs[name] = fn
	}
	vm := &VM{
		prog:    prog,
		opts:    opts,
		externs: externs,
		stack:   make([]Value, 0, 64),
		tr:      trace.Nop,
	}
	vm.eb = &errorBuilder{vm: vm}
	return vm
}

// Run executes the program entry point until Hlt or until the outermost
// frame returns.
func (vm *VM) Run(ctx context.Context) (*State, error) {
	if vm.prog.Entry < 0 || vm.prog.Entry >= len(vm.prog.Funcs) {
		return vm.state(), vm.eb.invalidFunction("program has no entry point (missing main)")
	}
	return vm.run(ctx, vm.prog.Entry, nil)
}

// Call runs the function named name with args and returns its result.
// The returned Value is the zero Value for unit functions.
func (vm *VM) Call(ctx context.Context, name string, args ...Value) (Value, error) {
	fi, ok := vm.prog.FuncIndex(name)
	if !ok {
		return Value{}, vm.eb.invalidFunction(fmt.Sprintf("no function named %q", name))
	}
	fn := &vm.prog.Funcs[fi]
	if len(args) != int(fn.NumParams) {
		return Value{}, vm.eb.invalidFunction(fmt.Sprintf("%s expects %d arguments, got %d", name, fn.NumParams, len(args)))
	}
	st, err := vm.run(ctx, fi, args)
	if err != nil {
		return Value{}, err
	}
	if !fn.ReturnsValue {
		return Value{}, nil
	}
	v, _ := st.Result()
	return v, nil
}

func (vm *VM) run(ctx context.Context, fi int, args []Value) (*State, error) {
	vm.reset()
	vm.tr = trace.FromContext(ctx)
	vm.traceFunc = trace.Wants(vm.tr, trace.ScopeFunc)
	vm.traceInst = trace.Wants(vm.tr, trace.ScopeInstr)
	span := trace.Begin(vm.tr, trace.ScopePass, "run", trace.SpanID(ctx))
	vm.runSpan = span.ID()
	progress := trace.ProgressFrom(ctx)
	defer func() { progress.SetSteps(vm.steps) }()

	vm.stack = append(vm.stack, args...)
	if err := vm.enter(fi); err != nil {
		span.End("error")
		return vm.state(), err
	}

	for !vm.halted {
		if vm.steps%cancelCheckInterval == 0 {
			progress.SetSteps(vm.steps)
			if err := ctx.Err(); err != nil {
				span.End("canceled")
				return vm.state(), fmt.Errorf("vm: run interrupted: %w", err)
			}
		}
		if err := vm.Step(); err != nil {
			vm.endFrameSpans("error")
			span.WithExtra("steps", fmt.Sprint(vm.steps)).End("error")
			return vm.state(), err
		}
	}
	vm.endFrameSpans("halt")
	vm.opts.Tracer.TraceHalt(vm.stack)
	span.WithExtra("steps", fmt.Sprint(vm.steps)).End("")
	return vm.state(), nil
}

func (vm *VM) reset() {
	vm.stack = vm.stack[:0]
	vm.frames = vm.frames[:0]
	vm.halted = false
	vm.steps = 0
	vm.curIP = 0
}

func (vm *VM) state() *State {
	return &State{
		Stack:  append([]Value(nil), vm.stack...),
		Halted: vm.halted,
		Steps:  vm.steps,
	}
}

// Step executes exactly one instruction.
func (vm *VM) Step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	if vm.halted || len(vm.frames) == 0 {
		return nil
	}
	fr := &vm.frames[len(vm.frames)-1]
	vm.curIP = fr.IP
	if vm.opts.MaxSteps > 0 && vm.steps >= vm.opts.MaxSteps {
		return vm.eb.stepLimit(vm.opts.MaxSteps)
	}
	if fr.IP < 0 || fr.IP >= len(fr.fn.Code) {
		return vm.eb.invalidJump(fr.IP, len(fr.fn.Code))
	}
	in := fr.fn.Code[fr.IP]
	vm.opts.Tracer.TraceInstr(len(vm.frames), fr.Name(), fr.IP, in, vm.stack)
	if vm.traceInst {
		trace.Point(vm.tr, trace.ScopeInstr, in.String(), fmt.Sprintf("%s+%04d", fr.Name(), fr.IP), vm.runSpan)
	}
	fr.IP++
	vm.steps++
	vm.exec(fr, in)
	return nil
}

// enter pushes a frame for function fi, moving its arguments off the stack.
func (vm *VM) enter(fi int) *Error {
	if fi < 0 || fi >= len(vm.prog.Funcs) {
		return vm.eb.invalidFunction(fmt.Sprintf("function index %d out of range", fi))
	}
	if len(vm.frames) >= vm.opts.MaxFrames {
		return vm.eb.callStackExhausted(vm.opts.MaxFrames)
	}
	fn := &vm.prog.Funcs[fi]
	n := int(fn.NumParams)
	if n > int(fn.NumLocals) {
		return vm.eb.invalidFunction(fmt.Sprintf("%s: %d params exceed %d locals", fn.Name, n, fn.NumLocals))
	}
	if vm.available() < n {
		return vm.eb.stackUnderflow("call " + fn.Name)
	}
	args := len(vm.stack) - n
	frame := newFrame(vm.prog, fi, args)
	copy(frame.Locals, vm.stack[args:])
	vm.stack = vm.stack[:args]
	if vm.traceFunc {
		frame.span = trace.Begin(vm.tr, trace.ScopeFunc, "func:"+fn.Name, vm.runSpan)
	}
	vm.frames = append(vm.frames, frame)
	return nil
}

// leave pops the current frame and pushes its result onto the caller's stack.
func (vm *VM) leave(fr *Frame) {
	var ret Value
	if fr.fn.ReturnsValue {
		ret = vm.pop("Ret")
	}
	vm.stack = vm.stack[:fr.Base]
	fr.span.End("")
	vm.frames = vm.frames[:len(vm.frames)-1]
	if fr.fn.ReturnsValue {
		vm.stack = append(vm.stack, ret)
	}
	if len(vm.frames) == 0 {
		vm.halted = true
	}
}

func (vm *VM) endFrameSpans(detail string) {
	for i := len(vm.frames) - 1; i >= 0; i-- {
		vm.frames[i].span.End(detail)
	}
}

// available is the number of operands the current frame may pop.
func (vm *VM) available() int {
	if len(vm.frames) == 0 {
		return len(vm.stack)
	}
	return len(vm.stack) - vm.frames[len(vm.frames)-1].Base
}
