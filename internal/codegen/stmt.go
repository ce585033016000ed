//nolint:errcheck // Type assertions are checked by construction
package codegen

import (
	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/hir"
)

func (fg *funcGen) stmts(b *hir.Block) error {
	for i := range b.Stmts {
		if err := fg.stmt(&b.Stmts[i]); err != nil {
			return err
		}
	}
	return nil
}

// scoped generates b inside its own scope.
func (fg *funcGen) scoped(b *hir.Block) error {
	fg.pushBound()
	defer fg.popBound()
	return fg.stmts(b)
}

func (fg *funcGen) stmt(s *hir.Stmt) error {
	switch s.Kind {
	case hir.StmtLet:
		data := s.Data.(hir.LetData)
		if err := fg.expr(data.Value); err != nil {
			return err
		}
		// bound after the initializer so that it still reads a shadowed binding
		fg.emit(bytecode.IA(bytecode.OpStore, int64(fg.bind(data.Var))))
	case hir.StmtAssign:
		data := s.Data.(hir.AssignData)
		if err := fg.expr(data.Value); err != nil {
			return err
		}
		slot, ok := fg.slot(data.Var)
		if !ok {
			return fg.errorf(ErrUnsupportedTarget, s.Span, "'"+data.Name+"' has no slot")
		}
		fg.emit(bytecode.IA(bytecode.OpStore, int64(slot)))
	case hir.StmtExpr:
		x := s.Data.(hir.ExprStmtData).Expr
		if err := fg.expr(x); err != nil {
			return err
		}
		if x.Type != fg.g.table.Unit {
			fg.emit(bytecode.I(bytecode.OpPop))
		}
	case hir.StmtBlock:
		return fg.scoped(s.Data.(hir.BlockStmtData).Block)
	case hir.StmtIf:
		return fg.ifStmt(s.Data.(hir.IfStmtData))
	case hir.StmtLoop:
		return fg.loop(s.Data.(hir.LoopData).Body)
	case hir.StmtReturn:
		if v := s.Data.(hir.ReturnData).Value; v != nil {
			if err := fg.expr(v); err != nil {
				return err
			}
		}
		fg.emit(bytecode.I(bytecode.OpRet))
	case hir.StmtBreak:
		if len(fg.loops) == 0 {
			return fg.errorf(ErrLoopControl, s.Span, "break")
		}
		l := fg.loops[len(fg.loops)-1]
		l.breaks = append(l.breaks, fg.emit(bytecode.Jump(bytecode.OpJmp, 0)))
	case hir.StmtContinue:
		if len(fg.loops) == 0 {
			return fg.errorf(ErrLoopControl, s.Span, "continue")
		}
		fg.jumpTo(bytecode.OpJmp, fg.loops[len(fg.loops)-1].start)
	default:
		return fg.errorf(ErrUnsupportedNode, s.Span, s.Kind.String())
	}
	return nil
}

// ifStmt emits the condition and both branches first and splices the jumps
// in afterwards:
//
//	cond; JmpFalse else; then; Jmp end; else: ...; end:
func (fg *funcGen) ifStmt(data hir.IfStmtData) error {
	if err := fg.expr(data.Cond); err != nil {
		return err
	}
	a := len(fg.code)
	if err := fg.scoped(data.Then); err != nil {
		return err
	}
	b := len(fg.code)
	elseStart := b
	if data.Else != nil {
		if err := fg.scoped(data.Else); err != nil {
			return err
		}
		if !data.Then.EndsInJump() {
			// skip the else block: land on the end after this insertion
			fg.insert(b, bytecode.Jump(bytecode.OpJmp, int64(len(fg.code)-b)))
			elseStart = b + 1
		}
	}
	fg.insert(a, bytecode.Jump(bytecode.OpJmpFalse, int64(elseStart-a)))
	return nil
}

func (fg *funcGen) loop(body *hir.Block) error {
	l := &loopCtx{start: len(fg.code)}
	fg.loops = append(fg.loops, l)
	err := fg.scoped(body)
	fg.loops = fg.loops[:len(fg.loops)-1]
	if err != nil {
		return err
	}
	fg.jumpTo(bytecode.OpJmp, l.start)
	end := len(fg.code)
	for _, at := range l.breaks {
		fg.code[at].A = int64(end - (at + 1))
	}
	return nil
}
