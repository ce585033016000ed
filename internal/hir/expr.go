package hir

import (
	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/symbols"
)

// ExprKind enumerates resolved expression kinds.
type ExprKind uint8

const (
	// ExprInt is an integer literal.
	ExprInt ExprKind = iota
	// ExprBool is a boolean literal.
	ExprBool
	// ExprVar reads a local variable or parameter.
	ExprVar
	// ExprCall calls a declared or extern function.
	ExprCall
	// ExprUnary applies - or !.
	ExprUnary
	// ExprBinary applies an arithmetic, comparison or logical operator.
	ExprBinary
	// ExprCast converts between int and bool.
	ExprCast
)

func (k ExprKind) String() string {
	switch k {
	case ExprInt:
		return "Int"
	case ExprBool:
		return "Bool"
	case ExprVar:
		return "Var"
	case ExprCall:
		return "Call"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprCast:
		return "Cast"
	default:
		return "Unknown"
	}
}

// Expr is a typed, resolved expression.
type Expr struct {
	Kind ExprKind
	Type symbols.TypeID
	Span source.Span
	Data ExprData
}

// ExprData is the kind-specific payload of an expression.
type ExprData interface {
	exprData()
}

type IntData struct {
	Value int64
}

func (IntData) exprData() {}

type BoolData struct {
	Value bool
}

func (BoolData) exprData() {}

type VarData struct {
	Var  symbols.VarID
	Name string
}

func (VarData) exprData() {}

type CallData struct {
	Func symbols.FuncID
	Name string
	Args []*Expr
}

func (CallData) exprData() {}

type UnaryData struct {
	Op      ast.UnaryOp
	Operand *Expr
}

func (UnaryData) exprData() {}

type BinaryData struct {
	Op    ast.BinaryOp
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

type CastData struct {
	Value  *Expr
	Target symbols.TypeID
}

func (CastData) exprData() {}

// IsLiteral reports whether e is an int or bool literal.
func (e *Expr) IsLiteral() bool {
	return e != nil && (e.Kind == ExprInt || e.Kind == ExprBool)
}
