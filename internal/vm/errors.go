package vm

import (
	"fmt"
	"strings"
)

// Code identifies the cause of a runtime error.
type Code int

// Stable codes; values are part of the CLI output.
const (
	StackUnderflow     Code = 1001 // VM1001
	InvalidSlot        Code = 1002 // VM1002
	InvalidJump        Code = 1003 // VM1003
	CallStackExhausted Code = 1004 // VM1004
	TypeMismatch       Code = 1005 // VM1005
	InvalidFunction    Code = 1006 // VM1006
	UnknownExtern      Code = 1007 // VM1007
	StepLimit          Code = 1008 // VM1008
	ExternFailed       Code = 1009 // VM1009
	InvalidOpcode      Code = 1999 // VM1999
)

// String returns the code as "VM1001".
func (c Code) String() string {
	return fmt.Sprintf("VM%d", int(c))
}

// BacktraceFrame is one frame of a runtime error backtrace.
type BacktraceFrame struct {
	Func string
	IP   int
}

// Error is a fatal runtime error.
type Error struct {
	Code      Code
	Message   string
	Func      string // function executing when the error occurred
	IP        int    // index of the failing instruction
	Backtrace []BacktraceFrame
}

func (e *Error) Error() string {
	return fmt.Sprintf("panic %s: %s", e.Code, e.Message)
}

// Format renders the error with its location and backtrace.
func (e *Error) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "panic %s: %s\n", e.Code, e.Message)
	if e.Func != "" {
		fmt.Fprintf(&sb, "at %s+%04d\n", e.Func, e.IP)
	}
	if len(e.Backtrace) > 0 {
		sb.WriteString("backtrace:\n")
		for i, f := range e.Backtrace {
			fmt.Fprintf(&sb, "  %d: %s+%04d\n", i, f.Func, f.IP)
		}
	}
	return sb.String()
}

type errorBuilder struct {
	vm *VM
}

// makeError captures the call stack, top frame first. Callers sit one past
// their Call instruction.
func (eb *errorBuilder) makeError(code Code, msg string) *Error {
	e := &Error{Code: code, Message: msg}
	frames := eb.vm.frames
	if len(frames) == 0 {
		return e
	}
	top := &frames[len(frames)-1]
	e.Func = top.Name()
	e.IP = eb.vm.curIP

	e.Backtrace = make([]BacktraceFrame, len(frames))
	e.Backtrace[0] = BacktraceFrame{Func: e.Func, IP: e.IP}
	for i := len(frames) - 2; i >= 0; i-- {
		f := &frames[i]
		e.Backtrace[len(frames)-1-i] = BacktraceFrame{Func: f.Name(), IP: max(f.IP-1, 0)}
	}
	return e
}

func (eb *errorBuilder) stackUnderflow(op string) *Error {
	return eb.makeError(StackUnderflow, fmt.Sprintf("%s: operand stack underflow", op))
}

func (eb *errorBuilder) invalidSlot(slot int64, n int) *Error {
	return eb.makeError(InvalidSlot, fmt.Sprintf("local slot %d out of range (frame has %d)", slot, n))
}

func (eb *errorBuilder) invalidJump(target, n int) *Error {
	return eb.makeError(InvalidJump, fmt.Sprintf("jump target %d outside code of length %d", target, n))
}

func (eb *errorBuilder) callStackExhausted(limit int) *Error {
	return eb.makeError(CallStackExhausted, fmt.Sprintf("call stack exhausted (%d frames)", limit))
}

func (eb *errorBuilder) typeMismatch(op string, expected string, got Value) *Error {
	return eb.makeError(TypeMismatch, fmt.Sprintf("%s: expected %s, got %s", op, expected, got.Kind))
}

func (eb *errorBuilder) invalidFunction(msg string) *Error {
	return eb.makeError(InvalidFunction, msg)
}

func (eb *errorBuilder) unknownExtern(name string) *Error {
	return eb.makeError(UnknownExtern, fmt.Sprintf("no host function for extern %q", name))
}

func (eb *errorBuilder) stepLimit(limit uint64) *Error {
	return eb.makeError(StepLimit, fmt.Sprintf("step limit of %d reached", limit))
}
