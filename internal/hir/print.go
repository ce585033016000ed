//nolint:errcheck // Type assertions are checked by construction
package hir

import (
	"fmt"
	"io"
	"strings"

	"github.com/rknit/whiskc/internal/symbols"
)

// Printer dumps HIR in a readable, indented text form.
type Printer struct {
	w      io.Writer
	table  *symbols.Table
	indent int
	err    error
}

// NewPrinter creates a printer. table may be nil; types then print as ids.
func NewPrinter(w io.Writer, table *symbols.Table) *Printer {
	return &Printer{w: w, table: table}
}

// Dump writes m to w.
func Dump(w io.Writer, m *Module) error {
	return NewPrinter(w, m.Symbols).PrintModule(m)
}

// PrintModule prints every function of m.
func (p *Printer) PrintModule(m *Module) error {
	p.printf("module %s\n\n", m.Name)
	for _, f := range m.Funcs {
		p.PrintFunc(f)
		p.printf("\n")
	}
	return p.err
}

// PrintFunc prints one function with its body.
func (p *Printer) PrintFunc(f *Func) {
	if f.IsExtern() {
		p.printf("extern ")
	}
	p.printf("func %s(", f.Name)
	for i, param := range f.Params {
		if i > 0 {
			p.printf(", ")
		}
		p.printf("%s#%d: %s", param.Name, param.Var, p.typeStr(param.Type))
	}
	p.printf(") -> %s (fn=%d)", p.typeStr(f.Result), f.ID)
	if f.Body == nil {
		p.printf("\n")
		return
	}
	p.printf(" {\n")
	p.indent++
	p.printBlock(f.Body)
	p.indent--
	p.printf("}\n")
}

func (p *Printer) printBlock(b *Block) {
	for i := range b.Stmts {
		p.printStmt(&b.Stmts[i])
	}
}

func (p *Printer) printNested(b *Block) {
	p.printf("{ // block %d\n", b.ID)
	p.indent++
	p.printBlock(b)
	p.indent--
	p.printIndent()
	p.printf("}")
}

func (p *Printer) printStmt(s *Stmt) {
	p.printIndent()

	switch s.Kind {
	case StmtLet:
		data := s.Data.(LetData)
		p.printf("let %s#%d = ", data.Name, data.Var)
		p.printExpr(data.Value)
	case StmtAssign:
		data := s.Data.(AssignData)
		p.printf("%s#%d = ", data.Name, data.Var)
		p.printExpr(data.Value)
	case StmtIf:
		data := s.Data.(IfStmtData)
		p.printf("if ")
		p.printExpr(data.Cond)
		p.printf(" ")
		p.printNested(data.Then)
		if data.Else != nil {
			p.printf(" else ")
			p.printNested(data.Else)
		}
	case StmtLoop:
		p.printf("loop ")
		p.printNested(s.Data.(LoopData).Body)
	case StmtReturn:
		p.printf("return")
		if v := s.Data.(ReturnData).Value; v != nil {
			p.printf(" ")
			p.printExpr(v)
		}
	case StmtBlock:
		p.printNested(s.Data.(BlockStmtData).Block)
	case StmtExpr:
		p.printExpr(s.Data.(ExprStmtData).Expr)
	case StmtBreak:
		p.printf("break")
	case StmtContinue:
		p.printf("continue")
	default:
		p.printf("<%s>", s.Kind)
	}
	p.printf("\n")
}

func (p *Printer) printExpr(e *Expr) {
	switch e.Kind {
	case ExprInt:
		p.printf("%d", e.Data.(IntData).Value)
		return
	case ExprBool:
		p.printf("%t", e.Data.(BoolData).Value)
		return
	case ExprVar:
		data := e.Data.(VarData)
		p.printf("%s#%d", data.Name, data.Var)
	case ExprCall:
		data := e.Data.(CallData)
		p.printf("%s(", data.Name)
		for i, arg := range data.Args {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(arg)
		}
		p.printf(")")
	case ExprUnary:
		data := e.Data.(UnaryData)
		p.printf("(%s", data.Op)
		p.printExpr(data.Operand)
		p.printf(")")
	case ExprBinary:
		data := e.Data.(BinaryData)
		p.printf("(")
		p.printExpr(data.Left)
		p.printf(" %s ", data.Op)
		p.printExpr(data.Right)
		p.printf(")")
	case ExprCast:
		data := e.Data.(CastData)
		p.printf("(")
		p.printExpr(data.Value)
		p.printf(" as %s)", p.typeStr(data.Target))
		return
	default:
		p.printf("<%s>", e.Kind)
	}
	p.printf(": %s", p.typeStr(e.Type))
}

func (p *Printer) printIndent() {
	for i := 0; i < p.indent; i++ {
		p.printf("  ")
	}
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) typeStr(id symbols.TypeID) string {
	if !id.IsValid() {
		return "?"
	}
	if p.table == nil {
		return fmt.Sprintf("type#%d", id)
	}
	return p.table.TypeName(id)
}

// ExprString renders e on one line.
func ExprString(e *Expr, table *symbols.Table) string {
	var sb strings.Builder
	NewPrinter(&sb, table).printExpr(e)
	return sb.String()
}
