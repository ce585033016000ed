package ast

import (
	"github.com/rknit/whiskc/internal/source"
)

// ExprKind enumerates raw expression kinds.
type ExprKind uint8

const (
	ExprInt ExprKind = iota
	ExprBool
	ExprIdent
	ExprUnary
	ExprBinary
	ExprCall
	ExprArray
	ExprIndex
	ExprCast
	ExprGroup
	ExprBlock
	ExprIf
	ExprLoop
	ExprReturn
	ExprBreak
	ExprContinue
)

func (k ExprKind) String() string {
	switch k {
	case ExprInt:
		return "Int"
	case ExprBool:
		return "Bool"
	case ExprIdent:
		return "Ident"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprCall:
		return "Call"
	case ExprArray:
		return "Array"
	case ExprIndex:
		return "Index"
	case ExprCast:
		return "Cast"
	case ExprGroup:
		return "Group"
	case ExprBlock:
		return "Block"
	case ExprIf:
		return "If"
	case ExprLoop:
		return "Loop"
	case ExprReturn:
		return "Return"
	case ExprBreak:
		return "Break"
	case ExprContinue:
		return "Continue"
	default:
		return "Unknown"
	}
}

// Expr is a raw expression node.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is implemented by every expression payload.
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

type IdentData struct {
	Name string
}

func (IdentData) exprData() {}

type UnaryData struct {
	Op      UnaryOp
	Operand *Expr
}

func (UnaryData) exprData() {}

type BinaryData struct {
	Op    BinaryOp
	OpPos source.Span
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

type CallData struct {
	Callee *Expr
	Args   Punctuated[*Expr]
}

func (CallData) exprData() {}

type ArrayData struct {
	Elems Punctuated[*Expr]
}

func (ArrayData) exprData() {}

type IndexData struct {
	Base  *Expr
	Index *Expr
}

func (IndexData) exprData() {}

type CastData struct {
	Value  *Expr
	Target TypeRef
}

func (CastData) exprData() {}

type GroupData struct {
	Inner *Expr
}

func (GroupData) exprData() {}

// Block is a braced statement list with an optional trailing value.
type Block struct {
	Stmts []Stmt
	Tail  *Expr // expression after the last ';', nil if absent
	Span  source.Span
}

func (*Block) exprData() {}

type IfData struct {
	Cond *Expr
	Then *Block
	Else *Block // nil without else; `else if` is a block holding one if
}

func (IfData) exprData() {}

type LoopData struct {
	Body *Block
}

func (LoopData) exprData() {}

type ReturnData struct {
	Value *Expr // nil for a bare return
}

func (ReturnData) exprData() {}

type BreakData struct{}

func (BreakData) exprData() {}

type ContinueData struct{}

func (ContinueData) exprData() {}

// IsBlockLike reports whether e may stand as a statement without a trailing ';'.
func (e *Expr) IsBlockLike() bool {
	switch e.Kind {
	case ExprBlock, ExprIf, ExprLoop:
		return true
	default:
		return false
	}
}

// AsBlock returns the block payload of an ExprBlock.
func (e *Expr) AsBlock() (*Block, bool) {
	if e == nil || e.Kind != ExprBlock {
		return nil, false
	}
	b, ok := e.Data.(*Block)
	return b, ok
}
