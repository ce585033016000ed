package sema

import (
	"fmt"

	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/hir"
	"github.com/rknit/whiskc/internal/symbols"
)

func unparen(x *ast.Expr) *ast.Expr {
	for x.Kind == ast.ExprGroup {
		x = x.Data.(ast.GroupData).Inner
	}
	return x
}

// resolveExpr resolves a value expression. It returns nil after reporting
// when x cannot be resolved.
func (r *resolver) resolveExpr(x *ast.Expr) *hir.Expr {
	x = unparen(x)
	switch x.Kind {
	case ast.ExprInt:
		return &hir.Expr{Kind: hir.ExprInt, Type: r.table.Int, Span: x.Span, Data: hir.IntData{Value: x.Data.(ast.IntData).Value}}
	case ast.ExprBool:
		return &hir.Expr{Kind: hir.ExprBool, Type: r.table.Bool, Span: x.Span, Data: hir.BoolData{Value: x.Data.(ast.BoolData).Value}}
	case ast.ExprIdent:
		return r.resolveIdent(x)
	case ast.ExprCall:
		return r.resolveCall(x)
	case ast.ExprUnary:
		return r.resolveUnary(x)
	case ast.ExprBinary:
		return r.resolveBinary(x)
	case ast.ExprCast:
		return r.resolveCast(x)
	case ast.ExprArray, ast.ExprIndex:
		r.errorf(diag.SemaUnsupportedExpr, x.Span, "arrays are not supported").Emit()
		// still resolve the operands so that their names are checked
		switch data := x.Data.(type) {
		case ast.ArrayData:
			for _, el := range data.Elems.Items {
				r.resolveExpr(el)
			}
		case ast.IndexData:
			r.resolveExpr(data.Base)
			r.resolveExpr(data.Index)
		}
		return nil
	default:
		r.errorf(diag.SemaUnsupportedExpr, x.Span, fmt.Sprintf("%s expression cannot be used as a value", kindName(x.Kind))).Emit()
		return nil
	}
}

func kindName(k ast.ExprKind) string {
	switch k {
	case ast.ExprBlock:
		return "block"
	case ast.ExprIf:
		return "if"
	case ast.ExprLoop:
		return "loop"
	case ast.ExprReturn:
		return "return"
	case ast.ExprBreak:
		return "break"
	case ast.ExprContinue:
		return "continue"
	default:
		return k.String()
	}
}

func (r *resolver) resolveIdent(x *ast.Expr) *hir.Expr {
	name := x.Data.(ast.IdentData).Name
	if vid, ok := r.table.LookupVar(r.block, name); ok {
		v := r.table.Vars.Get(vid)
		return &hir.Expr{Kind: hir.ExprVar, Type: v.Type, Span: x.Span, Data: hir.VarData{Var: vid, Name: name}}
	}
	if _, ok := r.table.LookupFunc(name); ok {
		r.errorf(diag.SemaUnsupportedExpr, x.Span, "function '"+name+"' cannot be used as a value").Emit()
		return nil
	}
	r.errorf(diag.SemaUnresolvedName, x.Span, "cannot find value '"+name+"' in this scope").Emit()
	return nil
}

func (r *resolver) resolveCall(x *ast.Expr) *hir.Expr {
	data := x.Data.(ast.CallData)
	args := make([]*hir.Expr, 0, data.Args.Len())
	failed := false
	for _, arg := range data.Args.Items {
		a := r.resolveExpr(arg)
		failed = failed || a == nil
		args = append(args, a)
	}

	callee := unparen(data.Callee)
	if callee.Kind != ast.ExprIdent {
		r.errorf(diag.SemaNotCallable, callee.Span, "only named functions can be called").Emit()
		return nil
	}
	name := callee.Data.(ast.IdentData).Name
	if _, ok := r.table.LookupVar(r.block, name); ok {
		r.errorf(diag.SemaNotCallable, callee.Span, "'"+name+"' is a variable, not a function").Emit()
		return nil
	}
	fid, ok := r.table.LookupFunc(name)
	if !ok {
		r.errorf(diag.SemaUnresolvedCall, callee.Span, "cannot find function '"+name+"'").Emit()
		return nil
	}
	fn := r.table.Funcs.Get(fid)
	if len(args) != len(fn.Params) {
		r.errorf(diag.SemaArityMismatch, x.Span,
			fmt.Sprintf("function '%s' takes %d arguments but %d were supplied", name, len(fn.Params), len(args))).
			WithNote(fn.Span, "declared here").
			Emit()
		return nil
	}
	if failed {
		return nil
	}
	for i, a := range args {
		want := r.table.Vars.Get(fn.Params[i]).Type
		if want.IsValid() && a.Type.IsValid() && want != a.Type {
			r.errorf(diag.SemaTypeMismatch, a.Span,
				fmt.Sprintf("argument %d of '%s' must be %s, found %s", i+1, name, r.table.TypeName(want), r.table.TypeName(a.Type))).Emit()
		}
	}
	return &hir.Expr{Kind: hir.ExprCall, Type: fn.Result, Span: x.Span, Data: hir.CallData{Func: fid, Name: name, Args: args}}
}

func (r *resolver) resolveUnary(x *ast.Expr) *hir.Expr {
	data := x.Data.(ast.UnaryData)
	operand := r.resolveExpr(data.Operand)
	if operand == nil {
		return nil
	}
	want := r.table.Int
	if data.Op == ast.UnaryNot {
		want = r.table.Bool
	}
	r.expectType(operand, want, "operand of '"+data.Op.String()+"'")
	return &hir.Expr{Kind: hir.ExprUnary, Type: want, Span: x.Span, Data: hir.UnaryData{Op: data.Op, Operand: operand}}
}

func (r *resolver) resolveBinary(x *ast.Expr) *hir.Expr {
	data := x.Data.(ast.BinaryData)
	left := r.resolveExpr(data.Left)
	right := r.resolveExpr(data.Right)
	if left == nil || right == nil {
		return nil
	}

	what := "operand of '" + data.Op.String() + "'"
	result := r.table.Bool
	switch data.Op {
	case ast.BinAdd, ast.BinSub:
		result = r.table.Int
		r.expectType(left, r.table.Int, what)
		r.expectType(right, r.table.Int, what)
	case ast.BinAnd, ast.BinOr:
		r.expectType(left, r.table.Bool, what)
		r.expectType(right, r.table.Bool, what)
	case ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		r.expectType(left, r.table.Int, what)
		r.expectType(right, r.table.Int, what)
	case ast.BinEq, ast.BinNe:
		if left.Type == r.table.Unit {
			r.errorf(diag.SemaTypeMismatch, left.Span, "unit values cannot be compared").Emit()
		} else {
			r.expectType(right, left.Type, what)
		}
	}
	return &hir.Expr{
		Kind: hir.ExprBinary,
		Type: result,
		Span: x.Span,
		Data: hir.BinaryData{Op: data.Op, Left: left, Right: right},
	}
}

func (r *resolver) resolveCast(x *ast.Expr) *hir.Expr {
	data := x.Data.(ast.CastData)
	value := r.resolveExpr(data.Value)
	target := r.lookupType(data.Target)
	if value == nil || !target.IsValid() {
		return nil
	}
	if target == r.table.Unit || value.Type == r.table.Unit {
		r.errorf(diag.SemaTypeMismatch, x.Span,
			"cannot cast "+r.table.TypeName(value.Type)+" to "+r.table.TypeName(target)).Emit()
		return nil
	}
	return &hir.Expr{Kind: hir.ExprCast, Type: target, Span: x.Span, Data: hir.CastData{Value: value, Target: target}}
}

// expectType reports a mismatch unless e has type want. Unknown types are
// skipped; they come from an error reported earlier.
func (r *resolver) expectType(e *hir.Expr, want symbols.TypeID, what string) {
	if e == nil || !e.Type.IsValid() || e.Type == want {
		return
	}
	r.errorf(diag.SemaTypeMismatch, e.Span,
		what+" must be "+r.table.TypeName(want)+", found "+r.table.TypeName(e.Type)).Emit()
}
