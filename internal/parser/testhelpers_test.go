package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/lexer"
	"github.com/rknit/whiskc/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func newTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.wsk", []byte(input)))
	bag := diag.NewBag(0)
	return lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func parseTestFile(t *testing.T, input string) (*ast.File, *diag.Bag) {
	t.Helper()
	lx, bag := newTestLexer(input)
	res := ParseFile(lx, Options{Reporter: diag.BagReporter{Bag: bag}})
	if res.File == nil {
		t.Fatalf("nil file for %q", input)
	}
	return res.File, bag
}

func parseTestExpr(t *testing.T, input string) *ast.Expr {
	t.Helper()
	lx, bag := newTestLexer(input)
	x, ok := ParseExpr(lx, Options{Reporter: diag.BagReporter{Bag: bag}})
	if !ok || bag.HasErrors() {
		t.Fatalf("parse %q: %s", input, diagnosticsSummary(bag))
	}
	return x
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// sexpr renders an expression with explicit grouping.
func sexpr(x *ast.Expr) string {
	if x == nil {
		return "<nil>"
	}
	switch d := x.Data.(type) {
	case ast.IntData:
		return fmt.Sprint(d.Value)
	case ast.BoolData:
		return fmt.Sprint(d.Value)
	case ast.IdentData:
		return d.Name
	case ast.UnaryData:
		return fmt.Sprintf("(%s %s)", d.Op, sexpr(d.Operand))
	case ast.BinaryData:
		return fmt.Sprintf("(%s %s %s)", d.Op, sexpr(d.Left), sexpr(d.Right))
	case ast.GroupData:
		return sexpr(d.Inner)
	case ast.CastData:
		return fmt.Sprintf("(as %s %s)", sexpr(d.Value), d.Target.Value)
	case ast.CallData:
		return fmt.Sprintf("(call %s [%s])", sexpr(d.Callee), d.Args.Join(sexpr))
	case ast.IndexData:
		return fmt.Sprintf("(index %s %s)", sexpr(d.Base), sexpr(d.Index))
	case ast.ArrayData:
		return "[" + d.Elems.Join(sexpr) + "]"
	default:
		return x.Kind.String()
	}
}
