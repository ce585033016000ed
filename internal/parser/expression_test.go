package parser

import (
	"testing"

	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/diag"
)

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2", "(+ 1 2)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a && b || c", "(|| (&& a b) c)"},
		{"a == b && c != d", "(&& (== a b) (!= c d))"},
		{"1 + 2 < 3 + 4", "(< (+ 1 2) (+ 3 4))"},
		{"-a + b", "(+ (- a) b)"},
		{"!a == b", "(== (! a) b)"},
		{"(1 + 2) - 3", "(- (+ 1 2) 3)"},
		{"1 - (2 - 3)", "(- 1 (- 2 3))"},
		{"x as bool || y", "(|| (as x bool) y)"},
		{"-x as int", "(as (- x) int)"},
		{"a + b as int", "(+ a (as b int))"},
		{"f(1, 2 + 3)", "(call f [1, (+ 2 3)])"},
		{"f()", "(call f [])"},
		{"f(g(x))", "(call f [(call g [x])])"},
		{"a[1]", "(index a 1)"},
		{"[1, 2, 3]", "[1, 2, 3]"},
		{"-f(1)", "(- (call f [1]))"},
		{"0x10 + 0b11", "(+ 16 3)"},
		{"1_000", "1000"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sexpr(parseTestExpr(t, tt.input))
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComparisonsAreLeftAssociative(t *testing.T) {
	got := sexpr(parseTestExpr(t, "a < b < c"))
	if want := "(< (< a b) c)"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestExpressionSpans(t *testing.T) {
	x := parseTestExpr(t, "abc + 12")
	if x.Span.Start != 0 || x.Span.End != 8 {
		t.Errorf("binary span = %v, want 0..8", x.Span)
	}
	bin := x.Data.(ast.BinaryData)
	if bin.OpPos.Start != 4 || bin.OpPos.End != 5 {
		t.Errorf("operator span = %v, want 4..5", bin.OpPos)
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"missing operand", "1 +", diag.SynUnexpectedToken},
		{"bang as infix", "a ! b", diag.SynUnexpectedInfix},
		{"unclosed paren", "(1 + 2", diag.SynUnclosedDelimiter},
		{"trailing comma", "f(1,)", diag.SynUnexpectedToken},
		{"overflow", "9223372036854775808", diag.SynIntOverflow},
		{"bad cast target", "x as 1", diag.SynExpectType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, bag := newTestLexer(tt.input)
			_, ok := ParseExpr(lx, Options{Reporter: diag.BagReporter{Bag: bag}})
			if ok {
				t.Fatalf("expected failure for %q", tt.input)
			}
			if !hasCode(bag, tt.code) {
				t.Errorf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
			if bag.Len() != 1 {
				t.Errorf("expected exactly one diagnostic, got %s", diagnosticsSummary(bag))
			}
		})
	}
}

func TestMaxInt64Literal(t *testing.T) {
	x := parseTestExpr(t, "9223372036854775807")
	if got := x.Data.(ast.IntData).Value; got != 1<<63-1 {
		t.Errorf("got %d", got)
	}
}

func TestIfElseIfChain(t *testing.T) {
	x := parseTestExpr(t, "if a { 1 } else if b { 2 } else { 3 }")
	if x.Kind != ast.ExprIf {
		t.Fatalf("kind = %v", x.Kind)
	}
	outer := x.Data.(ast.IfData)
	if outer.Else == nil || outer.Else.Tail == nil || outer.Else.Tail.Kind != ast.ExprIf {
		t.Fatalf("else branch should hold the nested if")
	}
	inner := outer.Else.Tail.Data.(ast.IfData)
	if inner.Else == nil || sexpr(inner.Else.Tail) != "3" {
		t.Errorf("innermost else = %v", inner.Else)
	}
}

func TestReturnForms(t *testing.T) {
	f, bag := parseTestFile(t, "func f() { return; } func g() int { return 1 + 2; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	ret := f.Items[0].Body.Stmts[0].Data.(ast.ExprStmtData).Expr
	if ret.Data.(ast.ReturnData).Value != nil {
		t.Errorf("bare return should have no value")
	}
	ret = f.Items[1].Body.Stmts[0].Data.(ast.ExprStmtData).Expr
	if got := sexpr(ret.Data.(ast.ReturnData).Value); got != "(+ 1 2)" {
		t.Errorf("return value = %s", got)
	}
}

func TestBindingPowerTable(t *testing.T) {
	want := map[string]BindingPower{
		"||": BPLogicalOr, "&&": BPLogicalAnd, "==": BPComparative,
		"+": BPAdditive, "as": BPCast, "(": BPCall, "[": BPIndex,
	}
	for _, k := range []struct {
		spell string
		input string
	}{{"||", "||"}, {"&&", "&&"}, {"==", "=="}, {"+", "+"}, {"as", "as"}, {"(", "("}, {"[", "["}} {
		lx, _ := newTestLexer(k.input)
		bp, ok := exprs.BindingPower(lx.Peek().Kind)
		if !ok || bp != want[k.spell] {
			t.Errorf("%s: bp = %v (%v), want %v", k.spell, bp, ok, want[k.spell])
		}
	}
}
