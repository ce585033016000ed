package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented tree view of f.
func Dump(w io.Writer, f *File) error {
	p := printer{w: w}
	for _, it := range f.Items {
		p.item(it)
	}
	return p.err
}

type printer struct {
	w      io.Writer
	indent int
	err    error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) item(it *Item) {
	params := it.Sig.Params.Join(func(pr Param) string {
		return pr.Name.Value + " " + pr.Type.Value
	})
	prefix := "func"
	if it.Kind == ItemExtern {
		prefix = "extern func"
	}
	p.line("%s %s(%s) %s", prefix, it.Sig.Name.Value, params, it.Sig.Result.Value)
	if it.Body != nil {
		p.indent++
		p.block(it.Body)
		p.indent--
	}
}

func (p *printer) block(b *Block) {
	p.line("Block")
	p.indent++
	for i := range b.Stmts {
		p.stmt(&b.Stmts[i])
	}
	if b.Tail != nil {
		p.line("Tail")
		p.indent++
		p.expr(b.Tail)
		p.indent--
	}
	p.indent--
}

func (p *printer) stmt(s *Stmt) {
	switch d := s.Data.(type) {
	case LetData:
		ty := "_"
		if d.Type != nil {
			ty = d.Type.Value
		}
		p.line("Let %s %s", d.Name.Value, ty)
		p.nested(d.Value)
	case AssignData:
		p.line("Assign")
		p.nested(d.Target, d.Value)
	case ExprStmtData:
		if d.Semi {
			p.line("Expr;")
		} else {
			p.line("Expr")
		}
		p.nested(d.Expr)
	}
}

func (p *printer) nested(es ...*Expr) {
	p.indent++
	for _, e := range es {
		p.expr(e)
	}
	p.indent--
}

func (p *printer) expr(e *Expr) {
	switch d := e.Data.(type) {
	case IntData:
		p.line("Int %d", d.Value)
	case BoolData:
		p.line("Bool %t", d.Value)
	case IdentData:
		p.line("Ident %s", d.Name)
	case UnaryData:
		p.line("Unary %s", d.Op)
		p.nested(d.Operand)
	case BinaryData:
		p.line("Binary %s", d.Op)
		p.nested(d.Left, d.Right)
	case CallData:
		p.line("Call")
		p.nested(append([]*Expr{d.Callee}, d.Args.Items...)...)
	case ArrayData:
		p.line("Array")
		p.nested(d.Elems.Items...)
	case IndexData:
		p.line("Index")
		p.nested(d.Base, d.Index)
	case CastData:
		p.line("Cast %s", d.Target.Value)
		p.nested(d.Value)
	case GroupData:
		p.line("Group")
		p.nested(d.Inner)
	case *Block:
		p.block(d)
	case IfData:
		p.line("If")
		p.indent++
		p.expr(d.Cond)
		p.block(d.Then)
		if d.Else != nil {
			p.line("Else")
			p.block(d.Else)
		}
		p.indent--
	case LoopData:
		p.line("Loop")
		p.indent++
		p.block(d.Body)
		p.indent--
	case ReturnData:
		p.line("Return")
		if d.Value != nil {
			p.nested(d.Value)
		}
	case BreakData:
		p.line("Break")
	case ContinueData:
		p.line("Continue")
	default:
		p.line("<%s>", e.Kind)
	}
}
