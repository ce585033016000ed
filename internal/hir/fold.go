package hir

import (
	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/symbols"
)

// ConstKind distinguishes folded integer and boolean constants.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstBool
)

// Const is the value of a constant expression.
type Const struct {
	Kind ConstKind
	Int  int64
	Bool bool
}

func intConst(v int64) Const { return Const{Kind: ConstInt, Int: v} }
func boolConst(v bool) Const { return Const{Kind: ConstBool, Bool: v} }

// Fold simplifies e bottom-up in place and reports its value when the whole
// expression is constant. A folded node becomes a literal with the original
// span and type. Variables and calls never fold, but call arguments do.
func Fold(e *Expr) (Const, bool) {
	if e == nil {
		return Const{}, false
	}
	c, ok := evalConst(e)
	if ok {
		replace(e, c)
	}
	return c, ok
}

func evalConst(e *Expr) (Const, bool) {
	switch e.Kind {
	case ExprInt:
		return intConst(e.Data.(IntData).Value), true
	case ExprBool:
		return boolConst(e.Data.(BoolData).Value), true
	case ExprCall:
		for _, arg := range e.Data.(CallData).Args {
			Fold(arg)
		}
		return Const{}, false
	case ExprUnary:
		data := e.Data.(UnaryData)
		v, ok := Fold(data.Operand)
		if !ok {
			return Const{}, false
		}
		return foldUnary(data.Op, v)
	case ExprBinary:
		data := e.Data.(BinaryData)
		l, lok := Fold(data.Left)
		r, rok := Fold(data.Right)
		if !lok || !rok {
			return Const{}, false
		}
		return foldBinary(data.Op, l, r)
	case ExprCast:
		data := e.Data.(CastData)
		v, ok := Fold(data.Value)
		if !ok {
			return Const{}, false
		}
		return foldCast(v, e.Type, data.Value.Type)
	default:
		return Const{}, false
	}
}

func foldUnary(op ast.UnaryOp, v Const) (Const, bool) {
	switch {
	case op == ast.UnaryNeg && v.Kind == ConstInt:
		return intConst(-v.Int), true
	case op == ast.UnaryNot && v.Kind == ConstBool:
		return boolConst(!v.Bool), true
	default:
		return Const{}, false
	}
}

func foldBinary(op ast.BinaryOp, l, r Const) (Const, bool) {
	if l.Kind != r.Kind {
		return Const{}, false
	}
	if l.Kind == ConstBool {
		switch op {
		case ast.BinAnd:
			return boolConst(l.Bool && r.Bool), true
		case ast.BinOr:
			return boolConst(l.Bool || r.Bool), true
		case ast.BinEq:
			return boolConst(l.Bool == r.Bool), true
		case ast.BinNe:
			return boolConst(l.Bool != r.Bool), true
		default:
			return Const{}, false
		}
	}
	switch op {
	case ast.BinAdd:
		return intConst(l.Int + r.Int), true
	case ast.BinSub:
		return intConst(l.Int - r.Int), true
	case ast.BinEq:
		return boolConst(l.Int == r.Int), true
	case ast.BinNe:
		return boolConst(l.Int != r.Int), true
	case ast.BinLt:
		return boolConst(l.Int < r.Int), true
	case ast.BinLe:
		return boolConst(l.Int <= r.Int), true
	case ast.BinGt:
		return boolConst(l.Int > r.Int), true
	case ast.BinGe:
		return boolConst(l.Int >= r.Int), true
	default:
		return Const{}, false
	}
}

// foldCast converts v for a cast from type source to type target. Casts only
// exist between int and bool, so differing types flip the constant's kind.
func foldCast(v Const, target, source symbols.TypeID) (Const, bool) {
	if target == source {
		return v, true
	}
	switch v.Kind {
	case ConstInt:
		return boolConst(v.Int != 0), true
	case ConstBool:
		if v.Bool {
			return intConst(1), true
		}
		return intConst(0), true
	default:
		return Const{}, false
	}
}

func replace(e *Expr, c Const) {
	if c.Kind == ConstBool {
		e.Kind, e.Data = ExprBool, BoolData{Value: c.Bool}
		return
	}
	e.Kind, e.Data = ExprInt, IntData{Value: c.Int}
}

// FoldModule folds every expression of every function body.
func FoldModule(m *Module) {
	for _, f := range m.Funcs {
		if f.Body != nil {
			foldBlock(f.Body)
		}
	}
}

func foldBlock(b *Block) {
	for i := range b.Stmts {
		foldStmt(&b.Stmts[i])
	}
}

func foldStmt(s *Stmt) {
	switch data := s.Data.(type) {
	case LetData:
		Fold(data.Value)
	case AssignData:
		Fold(data.Value)
	case ExprStmtData:
		Fold(data.Expr)
	case ReturnData:
		Fold(data.Value)
	case IfStmtData:
		Fold(data.Cond)
		foldBlock(data.Then)
		if data.Else != nil {
			foldBlock(data.Else)
		}
	case LoopData:
		foldBlock(data.Body)
	case BlockStmtData:
		foldBlock(data.Block)
	}
}
