package codegen

import (
	"fmt"

	"github.com/rknit/whiskc/internal/source"
)

type ErrorKind uint8

const (
	ErrUnsupportedTarget ErrorKind = iota + 1
	ErrUnboundVar
	ErrUnknownFunc
	ErrUnsupportedNode
	ErrLoopControl
	ErrTooManyLocals
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedTarget:
		return "unsupported assignment target"
	case ErrUnboundVar:
		return "unbound variable"
	case ErrUnknownFunc:
		return "unknown function"
	case ErrUnsupportedNode:
		return "unsupported node"
	case ErrLoopControl:
		return "loop control outside of loop"
	case ErrTooManyLocals:
		return "too many locals"
	default:
		return "codegen error"
	}
}

// Error stops code generation.
type Error struct {
	Kind ErrorKind
	Func string
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("codegen: %s: %s", e.Func, e.Kind)
	}
	return fmt.Sprintf("codegen: %s: %s: %s", e.Func, e.Kind, e.Msg)
}
