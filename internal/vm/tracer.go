package vm

import (
	"fmt"
	"io"
	"strings"

	"github.com/rknit/whiskc/internal/bytecode"
)

// Tracer writes one line per executed instruction.
type Tracer struct {
	w io.Writer
}

// NewTracer creates a new tracer that writes to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// TraceInstr traces an instruction about to execute.
// Format: [depth=N] <func> ip<ip> <instr> stack=[...]
func (t *Tracer) TraceInstr(depth int, fn string, ip int, in bytecode.Inst, stack []Value) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "[depth=%d] %s ip%d %s stack=%s\n", depth, fn, ip, in, formatStack(stack))
}

// TraceHalt records the final stack.
func (t *Tracer) TraceHalt(stack []Value) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "[halt] stack=%s\n", formatStack(stack))
}

// formatStack shows at most the top 8 values.
func formatStack(stack []Value) string {
	const shown = 8
	var sb strings.Builder
	sb.WriteByte('[')
	start := 0
	if len(stack) > shown {
		start = len(stack) - shown
		sb.WriteString("... ")
	}
	for i, v := range stack[start:] {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
