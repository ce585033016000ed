package hir

import (
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/symbols"
)

// StmtKind enumerates resolved statement kinds.
type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtAssign
	StmtIf
	StmtLoop
	StmtReturn
	StmtBlock
	StmtExpr
	StmtBreak
	StmtContinue
)

func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtAssign:
		return "Assign"
	case StmtIf:
		return "If"
	case StmtLoop:
		return "Loop"
	case StmtReturn:
		return "Return"
	case StmtBlock:
		return "Block"
	case StmtExpr:
		return "Expr"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	default:
		return "Unknown"
	}
}

type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

type StmtData interface {
	stmtData()
}

type LetData struct {
	Var   symbols.VarID
	Name  string
	Value *Expr
}

func (LetData) stmtData() {}

type AssignData struct {
	Var   symbols.VarID
	Name  string
	Value *Expr
}

func (AssignData) stmtData() {}

type IfStmtData struct {
	Cond *Expr
	Then *Block
	Else *Block // nil without else
}

func (IfStmtData) stmtData() {}

type LoopData struct {
	Body *Block
}

func (LoopData) stmtData() {}

type ReturnData struct {
	Value *Expr // nil for a bare return
}

func (ReturnData) stmtData() {}

type BlockStmtData struct {
	Block *Block
}

func (BlockStmtData) stmtData() {}

type ExprStmtData struct {
	Expr *Expr
}

func (ExprStmtData) stmtData() {}

type BreakData struct{}

func (BreakData) stmtData() {}

type ContinueData struct{}

func (ContinueData) stmtData() {}
