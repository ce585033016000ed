package ast

import (
	"github.com/rknit/whiskc/internal/source"
)

// StmtKind enumerates raw statement kinds.
type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtLet
	StmtAssign
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "Expr"
	case StmtLet:
		return "Let"
	case StmtAssign:
		return "Assign"
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

type ExprStmtData struct {
	Expr *Expr
	Semi bool // terminated by ';'
}

func (ExprStmtData) stmtData() {}

type LetData struct {
	Name  Located[string]
	Type  *TypeRef // nil when inferred
	Value *Expr
}

func (LetData) stmtData() {}

type AssignData struct {
	Target *Expr
	Value  *Expr
}

func (AssignData) stmtData() {}
