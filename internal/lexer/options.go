package lexer

import (
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/source"
)

type Options struct {
	Reporter diag.Reporter // nil drops lexical errors; lexing continues either way
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
