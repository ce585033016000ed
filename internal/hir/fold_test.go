package hir

import (
	"math"
	"testing"

	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/symbols"
)

var tbl = symbols.NewTable()

func lit(v int64) *Expr {
	return &Expr{Kind: ExprInt, Type: tbl.Int, Data: IntData{Value: v}}
}

func blit(v bool) *Expr {
	return &Expr{Kind: ExprBool, Type: tbl.Bool, Data: BoolData{Value: v}}
}

func variable(id symbols.VarID, ty symbols.TypeID) *Expr {
	return &Expr{Kind: ExprVar, Type: ty, Data: VarData{Var: id, Name: "v"}}
}

func bin(op ast.BinaryOp, l, r *Expr) *Expr {
	ty := tbl.Int
	if op.IsComparison() || op.IsLogical() {
		ty = tbl.Bool
	}
	return &Expr{Kind: ExprBinary, Type: ty, Data: BinaryData{Op: op, Left: l, Right: r}}
}

func un(op ast.UnaryOp, x *Expr) *Expr {
	return &Expr{Kind: ExprUnary, Type: x.Type, Data: UnaryData{Op: op, Operand: x}}
}

func cast(x *Expr, to symbols.TypeID) *Expr {
	return &Expr{Kind: ExprCast, Type: to, Data: CastData{Value: x, Target: to}}
}

func TestFoldIntAddition(t *testing.T) {
	sp := source.Span{File: 1, Start: 3, End: 8}
	e := bin(ast.BinAdd, lit(1), lit(2))
	e.Span = sp
	c, ok := Fold(e)
	if !ok || c.Kind != ConstInt || c.Int != 3 {
		t.Fatalf("Fold = %+v, %v", c, ok)
	}
	if e.Kind != ExprInt || e.Data.(IntData).Value != 3 {
		t.Errorf("node not replaced: %s", ExprString(e, tbl))
	}
	if e.Span != sp || e.Type != tbl.Int {
		t.Errorf("span/type not preserved: %v %v", e.Span, e.Type)
	}
}

func TestFoldRules(t *testing.T) {
	tests := []struct {
		name string
		expr *Expr
		want Const
	}{
		{"sub", bin(ast.BinSub, lit(5), lit(7)), intConst(-2)},
		{"wrapping add", bin(ast.BinAdd, lit(math.MaxInt64), lit(1)), intConst(math.MinInt64)},
		{"wrapping neg", un(ast.UnaryNeg, lit(math.MinInt64)), intConst(math.MinInt64)},
		{"and", bin(ast.BinAnd, blit(true), blit(false)), boolConst(false)},
		{"or", bin(ast.BinOr, blit(true), blit(false)), boolConst(true)},
		{"int eq", bin(ast.BinEq, lit(2), lit(2)), boolConst(true)},
		{"bool ne", bin(ast.BinNe, blit(true), blit(true)), boolConst(false)},
		{"lt", bin(ast.BinLt, lit(1), lit(2)), boolConst(true)},
		{"le", bin(ast.BinLe, lit(2), lit(2)), boolConst(true)},
		{"gt", bin(ast.BinGt, lit(1), lit(2)), boolConst(false)},
		{"ge", bin(ast.BinGe, lit(1), lit(2)), boolConst(false)},
		{"not", un(ast.UnaryNot, blit(false)), boolConst(true)},
		{"nested", bin(ast.BinLt, bin(ast.BinAdd, lit(1), lit(2)), un(ast.UnaryNeg, lit(-4))), boolConst(true)},
		{"int to bool", cast(lit(7), tbl.Bool), boolConst(true)},
		{"zero to bool", cast(lit(0), tbl.Bool), boolConst(false)},
		{"bool to int", cast(blit(true), tbl.Int), intConst(1)},
		{"identity cast", cast(lit(9), tbl.Int), intConst(9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Fold(tt.expr)
			if !ok || got != tt.want {
				t.Errorf("Fold = %+v, %v; want %+v", got, ok, tt.want)
			}
		})
	}
}

func TestFoldLeavesNonConstants(t *testing.T) {
	x := variable(1, tbl.Int)
	e := bin(ast.BinAdd, x, bin(ast.BinAdd, lit(1), lit(2)))
	if _, ok := Fold(e); ok {
		t.Fatalf("expression with a variable folded")
	}
	data := e.Data.(BinaryData)
	if data.Left != x {
		t.Errorf("variable operand replaced")
	}
	if data.Right.Kind != ExprInt || data.Right.Data.(IntData).Value != 3 {
		t.Errorf("constant subtree not folded: %s", ExprString(data.Right, tbl))
	}

	call := &Expr{Kind: ExprCall, Type: tbl.Int, Data: CallData{Func: 1, Name: "f", Args: []*Expr{bin(ast.BinSub, lit(4), lit(1))}}}
	if _, ok := Fold(call); ok {
		t.Fatalf("call folded")
	}
	if arg := call.Data.(CallData).Args[0]; arg.Kind != ExprInt {
		t.Errorf("call argument not folded: %s", ExprString(arg, tbl))
	}
}

func TestFoldIsIdempotent(t *testing.T) {
	build := func() *Expr {
		return bin(ast.BinOr,
			bin(ast.BinEq, variable(1, tbl.Int), bin(ast.BinAdd, lit(1), lit(1))),
			un(ast.UnaryNot, blit(true)))
	}
	once := build()
	Fold(once)
	first := ExprString(once, tbl)
	Fold(once)
	if second := ExprString(once, tbl); first != second {
		t.Errorf("second fold changed the tree:\n%s\n%s", first, second)
	}
}

func TestFoldModuleWalksStatements(t *testing.T) {
	cond := bin(ast.BinLt, lit(1), lit(2))
	ret := bin(ast.BinAdd, lit(40), lit(2))
	loopVal := bin(ast.BinSub, lit(3), lit(1))
	m := &Module{Funcs: []*Func{
		{Name: "ext"},
		{Name: "main", Body: &Block{Stmts: []Stmt{
			{Kind: StmtIf, Data: IfStmtData{Cond: cond, Then: &Block{Stmts: []Stmt{
				{Kind: StmtReturn, Data: ReturnData{Value: ret}},
			}}}},
			{Kind: StmtLoop, Data: LoopData{Body: &Block{Stmts: []Stmt{
				{Kind: StmtExpr, Data: ExprStmtData{Expr: loopVal}},
				{Kind: StmtBreak, Data: BreakData{}},
			}}}},
			{Kind: StmtReturn, Data: ReturnData{}},
		}}},
	}}
	FoldModule(m)
	if cond.Kind != ExprBool || ret.Kind != ExprInt || loopVal.Kind != ExprInt {
		t.Errorf("module not folded: cond=%v ret=%v loop=%v", cond.Kind, ret.Kind, loopVal.Kind)
	}
}

func TestBlockTerminates(t *testing.T) {
	ret := Stmt{Kind: StmtReturn, Data: ReturnData{}}
	brk := Stmt{Kind: StmtBreak, Data: BreakData{}}
	tests := []struct {
		name  string
		block *Block
		want  bool
	}{
		{"empty", &Block{}, false},
		{"return", &Block{Stmts: []Stmt{ret}}, true},
		{"infinite loop", &Block{Stmts: []Stmt{{Kind: StmtLoop, Data: LoopData{Body: &Block{}}}}}, true},
		{"loop with break", &Block{Stmts: []Stmt{{Kind: StmtLoop, Data: LoopData{Body: &Block{Stmts: []Stmt{brk}}}}}}, false},
		{"if without else", &Block{Stmts: []Stmt{{Kind: StmtIf, Data: IfStmtData{Cond: blit(true), Then: &Block{Stmts: []Stmt{ret}}}}}}, false},
		{"if both return", &Block{Stmts: []Stmt{{Kind: StmtIf, Data: IfStmtData{
			Cond: blit(true), Then: &Block{Stmts: []Stmt{ret}}, Else: &Block{Stmts: []Stmt{ret}},
		}}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.block.Terminates(); got != tt.want {
				t.Errorf("Terminates = %v, want %v", got, tt.want)
			}
		})
	}
}
