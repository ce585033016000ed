package sema

import (
	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/hir"
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/symbols"
)

// resolveStmts resolves the statements of src into dst. The caller has
// already made dst.ID the current block.
func (r *resolver) resolveStmts(dst *hir.Block, src *ast.Block) {
	for i := range src.Stmts {
		r.resolveStmt(dst, &src.Stmts[i])
	}
}

// resolveNested resolves src as a child scope of the current block. Its
// trailing value, if any, is evaluated and discarded.
func (r *resolver) resolveNested(src *ast.Block) *hir.Block {
	id := r.table.NewBlock(r.block, r.fn, src.Span)
	parent := r.block
	r.block = id
	defer func() { r.block = parent }()

	b := &hir.Block{ID: id, Span: src.Span}
	r.resolveStmts(b, src)
	if src.Tail != nil {
		r.resolveExprStmt(b, src.Tail)
	}
	return b
}

func (r *resolver) resolveStmt(dst *hir.Block, s *ast.Stmt) {
	switch data := s.Data.(type) {
	case ast.LetData:
		r.resolveLet(dst, s.Span, data)
	case ast.AssignData:
		r.resolveAssign(dst, s.Span, data)
	case ast.ExprStmtData:
		r.resolveExprStmt(dst, data.Expr)
	}
}

func (r *resolver) resolveLet(dst *hir.Block, sp source.Span, data ast.LetData) {
	// the initializer sees the bindings before this let
	value := r.resolveExpr(data.Value)
	ty := symbols.NoTypeID
	if value != nil {
		ty = value.Type
	}
	if data.Type != nil {
		declared := r.lookupType(*data.Type)
		if declared.IsValid() && ty.IsValid() && declared != ty {
			r.errorf(diag.SemaTypeMismatch, data.Value.Span,
				"cannot initialize '"+data.Name.Value+"' of type "+r.table.TypeName(declared)+" with "+r.table.TypeName(ty)).Emit()
		}
		ty = declared
	}
	if ty == r.table.Unit {
		r.errorf(diag.SemaTypeMismatch, data.Name.Span, "variable '"+data.Name.Value+"' cannot hold a unit value").Emit()
	}
	vid := r.table.DeclareVar(symbols.Var{Name: data.Name.Value, Type: ty, Span: data.Name.Span, Block: r.block})
	if value == nil {
		return
	}
	dst.Stmts = append(dst.Stmts, hir.Stmt{
		Kind: hir.StmtLet,
		Span: sp,
		Data: hir.LetData{Var: vid, Name: data.Name.Value, Value: value},
	})
}

func (r *resolver) resolveAssign(dst *hir.Block, sp source.Span, data ast.AssignData) {
	target := unparen(data.Target)
	value := r.resolveExpr(data.Value)
	if target.Kind != ast.ExprIdent {
		r.errorf(diag.SemaInvalidAssign, data.Target.Span, "only variables can be assigned to").Emit()
		return
	}
	name := target.Data.(ast.IdentData).Name
	vid, ok := r.table.LookupVar(r.block, name)
	if !ok {
		if _, isFunc := r.table.LookupFunc(name); isFunc {
			r.errorf(diag.SemaInvalidAssign, target.Span, "cannot assign to function '"+name+"'").Emit()
		} else {
			r.errorf(diag.SemaUnresolvedName, target.Span, "cannot find variable '"+name+"' in this scope").Emit()
		}
		return
	}
	if value == nil {
		return
	}
	if want := r.table.Vars.Get(vid).Type; want.IsValid() && value.Type.IsValid() && want != value.Type {
		r.errorf(diag.SemaTypeMismatch, data.Value.Span,
			"cannot assign "+r.table.TypeName(value.Type)+" to '"+name+"' of type "+r.table.TypeName(want)).Emit()
	}
	dst.Stmts = append(dst.Stmts, hir.Stmt{
		Kind: hir.StmtAssign,
		Span: sp,
		Data: hir.AssignData{Var: vid, Name: name, Value: value},
	})
}

// isStmtExpr reports whether x is control flow that lowers to a statement.
func isStmtExpr(x *ast.Expr) bool {
	switch x.Kind {
	case ast.ExprIf, ast.ExprLoop, ast.ExprBlock, ast.ExprReturn, ast.ExprBreak, ast.ExprContinue:
		return true
	default:
		return false
	}
}

func (r *resolver) resolveExprStmt(dst *hir.Block, x *ast.Expr) {
	push := func(kind hir.StmtKind, data hir.StmtData) {
		dst.Stmts = append(dst.Stmts, hir.Stmt{Kind: kind, Span: x.Span, Data: data})
	}

	switch x.Kind {
	case ast.ExprIf:
		data := x.Data.(ast.IfData)
		cond := r.resolveExpr(data.Cond)
		r.expectType(cond, r.table.Bool, "if condition")
		out := hir.IfStmtData{Cond: cond, Then: r.resolveNested(data.Then)}
		if data.Else != nil {
			out.Else = r.resolveNested(data.Else)
		}
		// keep the shape on failure so termination checks stay accurate
		push(hir.StmtIf, out)
	case ast.ExprLoop:
		r.loopDepth++
		body := r.resolveNested(x.Data.(ast.LoopData).Body)
		r.loopDepth--
		push(hir.StmtLoop, hir.LoopData{Body: body})
	case ast.ExprBlock:
		b, _ := x.AsBlock()
		push(hir.StmtBlock, hir.BlockStmtData{Block: r.resolveNested(b)})
	case ast.ExprReturn:
		ret := x.Data.(ast.ReturnData)
		if ret.Value == nil {
			if result := r.table.Funcs.Get(r.fn).Result; result.IsValid() && result != r.table.Unit {
				r.errorf(diag.SemaMissingReturn, x.Span, "return without a value in a function returning "+r.table.TypeName(result)).Emit()
			}
			push(hir.StmtReturn, hir.ReturnData{})
			return
		}
		value := r.resolveExpr(ret.Value)
		if value != nil {
			r.checkReturnType(value, ret.Value.Span)
		}
		push(hir.StmtReturn, hir.ReturnData{Value: value})
	case ast.ExprBreak, ast.ExprContinue:
		keyword := "continue"
		if x.Kind == ast.ExprBreak {
			keyword = "break"
		}
		if r.loopDepth == 0 {
			r.errorf(diag.SemaLoopControl, x.Span, "'"+keyword+"' outside of a loop").Emit()
			return
		}
		if x.Kind == ast.ExprBreak {
			push(hir.StmtBreak, hir.BreakData{})
		} else {
			push(hir.StmtContinue, hir.ContinueData{})
		}
	default:
		if value := r.resolveExpr(x); value != nil {
			push(hir.StmtExpr, hir.ExprStmtData{Expr: value})
		}
	}
}

func (r *resolver) checkReturnType(value *hir.Expr, sp source.Span) {
	result := r.table.Funcs.Get(r.fn).Result
	if !result.IsValid() || !value.Type.IsValid() || result == value.Type {
		return
	}
	r.errorf(diag.SemaTypeMismatch, sp,
		"cannot return "+r.table.TypeName(value.Type)+" from a function returning "+r.table.TypeName(result)).Emit()
}
