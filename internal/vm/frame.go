package vm

import (
	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/trace"
)

// Frame is one function activation.
type Frame struct {
	Func   int // index into Program.Funcs
	IP     int // next instruction
	Locals []Value
	Base   int // operand stack height when the frame was entered

	fn   *bytecode.Function
	span *trace.Span
}

func newFrame(p *bytecode.Program, fi, base int) Frame {
	fn := &p.Funcs[fi]
	return Frame{
		Func:   fi,
		Locals: make([]Value, fn.NumLocals),
		Base:   base,
		fn:     fn,
	}
}

// Name returns the name of the executing function.
func (f *Frame) Name() string {
	return f.fn.Name
}
