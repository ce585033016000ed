//nolint:errcheck // Type assertions are checked by construction
package codegen

import (
	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/hir"
)

var binaryOps = map[ast.BinaryOp]bytecode.Op{
	ast.BinAdd: bytecode.OpAdd,
	ast.BinSub: bytecode.OpSub,
	ast.BinAnd: bytecode.OpAnd,
	ast.BinOr:  bytecode.OpOr,
	ast.BinEq:  bytecode.OpEq,
	ast.BinNe:  bytecode.OpNe,
	ast.BinLt:  bytecode.OpLt,
	ast.BinLe:  bytecode.OpLe,
	ast.BinGt:  bytecode.OpGt,
	ast.BinGe:  bytecode.OpGe,
}

func (fg *funcGen) expr(e *hir.Expr) error {
	switch e.Kind {
	case hir.ExprInt:
		fg.emit(bytecode.Push(e.Data.(hir.IntData).Value))
	case hir.ExprBool:
		fg.emit(bytecode.PushBool(e.Data.(hir.BoolData).Value))
	case hir.ExprVar:
		data := e.Data.(hir.VarData)
		slot, ok := fg.slot(data.Var)
		if !ok {
			return fg.errorf(ErrUnboundVar, e.Span, data.Name)
		}
		fg.emit(bytecode.IA(bytecode.OpLoad, int64(slot)))
	case hir.ExprCall:
		return fg.call(e)
	case hir.ExprUnary:
		data := e.Data.(hir.UnaryData)
		if err := fg.expr(data.Operand); err != nil {
			return err
		}
		if data.Op == ast.UnaryNot {
			fg.emit(bytecode.I(bytecode.OpNot))
		} else {
			fg.emit(bytecode.I(bytecode.OpNeg))
		}
	case hir.ExprBinary:
		data := e.Data.(hir.BinaryData)
		op, ok := binaryOps[data.Op]
		if !ok {
			return fg.errorf(ErrUnsupportedNode, e.Span, "operator "+data.Op.String())
		}
		// both operands are always evaluated; && and || do not short-circuit
		if err := fg.expr(data.Left); err != nil {
			return err
		}
		if err := fg.expr(data.Right); err != nil {
			return err
		}
		fg.emit(bytecode.I(op))
	case hir.ExprCast:
		return fg.cast(e)
	default:
		return fg.errorf(ErrUnsupportedNode, e.Span, e.Kind.String())
	}
	return nil
}

func (fg *funcGen) call(e *hir.Expr) error {
	data := e.Data.(hir.CallData)
	for _, arg := range data.Args {
		if err := fg.expr(arg); err != nil {
			return err
		}
	}
	if idx, ok := fg.g.funcs[data.Func]; ok {
		fg.emit(bytecode.IA(bytecode.OpCall, int64(idx)))
		return nil
	}
	if idx, ok := fg.g.externs[data.Func]; ok {
		fg.emit(bytecode.IA(bytecode.OpCallExtern, int64(idx)))
		return nil
	}
	return fg.errorf(ErrUnknownFunc, e.Span, data.Name)
}

func (fg *funcGen) cast(e *hir.Expr) error {
	data := e.Data.(hir.CastData)
	if err := fg.expr(data.Value); err != nil {
		return err
	}
	from, to := data.Value.Type, data.Target
	switch {
	case from == to:
	case to == fg.g.table.Int && from == fg.g.table.Bool:
		fg.emit(bytecode.I(bytecode.OpToInt))
	case to == fg.g.table.Bool && from == fg.g.table.Int:
		fg.emit(bytecode.I(bytecode.OpToBool))
	default:
		return fg.errorf(ErrUnsupportedNode, e.Span,
			"cast from "+fg.g.table.TypeName(from)+" to "+fg.g.table.TypeName(to))
	}
	return nil
}
