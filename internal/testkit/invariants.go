// Package testkit holds structural checks shared by parser tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/source"
)

// CheckSpanInvariants verifies the spans of a parsed file:
//  1. every span is well formed, belongs to sf and lies within its content
//  2. items appear in source order without overlapping
//  3. every child node lies inside its parent
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	c := checker{file: sf.ID, size: size}
	if err := c.span("file", f.Span); err != nil {
		return err
	}

	var prevEnd uint32
	for i, it := range f.Items {
		if it == nil {
			return fmt.Errorf("item %d is nil", i)
		}
		where := fmt.Sprintf("item %d (%s)", i, it.Sig.Name.Value)
		if err := c.within(where, it.Span, f.Span); err != nil {
			return err
		}
		if it.Span.Start < prevEnd {
			return fmt.Errorf("%s overlaps the previous item: starts at %d before %d", where, it.Span.Start, prevEnd)
		}
		prevEnd = it.Span.End
		if err := c.within(where+" name", it.Sig.Name.Span, it.Span); err != nil {
			return err
		}
		for _, p := range it.Sig.Params.Items {
			if err := c.within(where+" param "+p.Name.Value, p.Name.Span, it.Sig.Span); err != nil {
				return err
			}
		}
		if it.Body != nil {
			if err := c.block(where, it.Body, it.Span); err != nil {
				return err
			}
		}
	}
	return nil
}

type checker struct {
	file source.FileID
	size uint32
}

func (c checker) span(where string, sp source.Span) error {
	switch {
	case sp.File != c.file:
		return fmt.Errorf("%s: span points to file %d, want %d", where, sp.File, c.file)
	case sp.End < sp.Start:
		return fmt.Errorf("%s: inverted span %v", where, sp)
	case sp.End > c.size:
		return fmt.Errorf("%s: span %v ends past content (%d bytes)", where, sp, c.size)
	}
	return nil
}

func (c checker) within(where string, sp, parent source.Span) error {
	if err := c.span(where, sp); err != nil {
		return err
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("%s: span %v escapes parent %v", where, sp, parent)
	}
	return nil
}

func (c checker) block(where string, b *ast.Block, parent source.Span) error {
	if err := c.within(where+" block", b.Span, parent); err != nil {
		return err
	}
	for i := range b.Stmts {
		st := &b.Stmts[i]
		sw := fmt.Sprintf("%s stmt %d", where, i)
		if err := c.within(sw, st.Span, b.Span); err != nil {
			return err
		}
		var err error
		switch d := st.Data.(type) {
		case ast.ExprStmtData:
			err = c.expr(sw, d.Expr, st.Span)
		case ast.LetData:
			if err = c.within(sw+" name", d.Name.Span, st.Span); err == nil {
				err = c.expr(sw, d.Value, st.Span)
			}
		case ast.AssignData:
			if err = c.expr(sw+" target", d.Target, st.Span); err == nil {
				err = c.expr(sw+" value", d.Value, st.Span)
			}
		}
		if err != nil {
			return err
		}
	}
	if b.Tail != nil {
		return c.expr(where+" tail", b.Tail, b.Span)
	}
	return nil
}

func (c checker) expr(where string, e *ast.Expr, parent source.Span) error {
	if e == nil {
		return nil
	}
	where = where + " " + e.Kind.String()
	if err := c.within(where, e.Span, parent); err != nil {
		return err
	}
	sp := e.Span
	switch d := e.Data.(type) {
	case ast.UnaryData:
		return c.expr(where, d.Operand, sp)
	case ast.BinaryData:
		if err := c.expr(where, d.Left, sp); err != nil {
			return err
		}
		return c.expr(where, d.Right, sp)
	case ast.CallData:
		if err := c.expr(where, d.Callee, sp); err != nil {
			return err
		}
		for _, a := range d.Args.Items {
			if err := c.expr(where+" arg", a, sp); err != nil {
				return err
			}
		}
	case ast.ArrayData:
		for _, el := range d.Elems.Items {
			if err := c.expr(where, el, sp); err != nil {
				return err
			}
		}
	case ast.IndexData:
		if err := c.expr(where, d.Base, sp); err != nil {
			return err
		}
		return c.expr(where, d.Index, sp)
	case ast.CastData:
		if err := c.expr(where, d.Value, sp); err != nil {
			return err
		}
		return c.within(where+" type", d.Target.Span, sp)
	case ast.GroupData:
		return c.expr(where, d.Inner, sp)
	case *ast.Block:
		return c.block(where, d, sp)
	case ast.IfData:
		if err := c.expr(where+" cond", d.Cond, sp); err != nil {
			return err
		}
		if err := c.block(where+" then", d.Then, sp); err != nil {
			return err
		}
		if d.Else != nil {
			return c.block(where+" else", d.Else, sp)
		}
	case ast.LoopData:
		return c.block(where, d.Body, sp)
	case ast.ReturnData:
		return c.expr(where, d.Value, sp)
	}
	return nil
}
