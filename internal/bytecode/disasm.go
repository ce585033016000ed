package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes a readable listing of p.
func Disassemble(w io.Writer, p *Program) error {
	for i, ext := range p.Externs {
		if _, err := fmt.Fprintf(w, "extern #%d %s (params=%d%s)\n", i, ext.Name, ext.NumParams, retSuffix(ext.ReturnsValue)); err != nil {
			return err
		}
	}
	if len(p.Externs) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for i := range p.Funcs {
		if err := DisassembleFunc(w, p, i); err != nil {
			return err
		}
	}
	return nil
}

// DisassembleFunc writes the listing of function fi.
func DisassembleFunc(w io.Writer, p *Program, fi int) error {
	f := &p.Funcs[fi]
	entry := ""
	if fi == p.Entry {
		entry = " entry"
	}
	if _, err := fmt.Fprintf(w, "func #%d %s (params=%d locals=%d%s)%s\n",
		fi, f.Name, f.NumParams, f.NumLocals, retSuffix(f.ReturnsValue), entry); err != nil {
		return err
	}
	for ip, in := range f.Code {
		if _, err := fmt.Fprintf(w, "  %04d  %s%s\n", ip, in, annotate(p, ip, in)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func annotate(p *Program, ip int, in Inst) string {
	switch in.Op {
	case OpJmp, OpJmpFalse:
		return fmt.Sprintf("  ; -> %04d", in.Target(ip))
	case OpCall:
		if in.A >= 0 && in.A < int64(len(p.Funcs)) {
			return "  ; " + p.Funcs[in.A].Name
		}
	case OpCallExtern:
		if in.A >= 0 && in.A < int64(len(p.Externs)) {
			return "  ; " + p.Externs[in.A].Name
		}
	}
	return ""
}

func retSuffix(returns bool) string {
	if returns {
		return " returns"
	}
	return ""
}
