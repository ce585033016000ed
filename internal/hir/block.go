package hir

import (
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/symbols"
)

// Block is a scope holding a sequence of statements.
type Block struct {
	ID    symbols.BlockID
	Stmts []Stmt
	Span  source.Span
}

// LastStmt returns the last statement in the block, or nil if empty.
func (b *Block) LastStmt() *Stmt {
	if b == nil || len(b.Stmts) == 0 {
		return nil
	}
	return &b.Stmts[len(b.Stmts)-1]
}

// Terminates reports whether control never falls off the end of b: it ends
// in a return, an unconditional loop, or an if whose branches both terminate.
func (b *Block) Terminates() bool {
	last := b.LastStmt()
	if last == nil {
		return false
	}
	switch last.Kind {
	case StmtReturn:
		return true
	case StmtLoop:
		return !containsBreak(last.Data.(LoopData).Body)
	case StmtBlock:
		return last.Data.(BlockStmtData).Block.Terminates()
	case StmtIf:
		data := last.Data.(IfStmtData)
		return data.Else != nil && data.Then.Terminates() && data.Else.Terminates()
	default:
		return false
	}
}

// EndsInJump reports whether the last statement of b transfers control away
// unconditionally.
func (b *Block) EndsInJump() bool {
	last := b.LastStmt()
	if last == nil {
		return false
	}
	switch last.Kind {
	case StmtReturn, StmtBreak, StmtContinue:
		return true
	default:
		return false
	}
}

// containsBreak looks for a break that targets the loop owning b. Breaks in
// nested loops belong to those loops.
func containsBreak(b *Block) bool {
	for i := range b.Stmts {
		s := &b.Stmts[i]
		switch s.Kind {
		case StmtBreak:
			return true
		case StmtBlock:
			if containsBreak(s.Data.(BlockStmtData).Block) {
				return true
			}
		case StmtIf:
			data := s.Data.(IfStmtData)
			if containsBreak(data.Then) || (data.Else != nil && containsBreak(data.Else)) {
				return true
			}
		}
	}
	return false
}
