package parser

import (
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/token"
)

// advance consumes the next token and remembers its span.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan points at the next token, or just past the previous one at EOF.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.AtEnd()
	}
	return peek.Span
}

// expect consumes a token of kind k or reports code at the current position.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(code, sp, msg+", found "+p.Peek().String())
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) bool {
	full := p.opts.Enough()
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil || full {
		return false
	}
	p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	return true
}
