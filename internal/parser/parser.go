package parser

import (
	"slices"

	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/lexer"
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is used up.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   *ast.File
	Errors uint
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile parses every top-level item of the lexer's file.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{lx: lx, opts: opts, lastSpan: lx.EmptySpan()}
	f := p.parseItems()
	return Result{File: f, Errors: p.opts.CurrentErrors}
}

// ParseExpr parses a single expression followed by EOF. It exists for tools
// and tests that work below the item level.
func ParseExpr(lx *lexer.Lexer, opts Options) (*ast.Expr, bool) {
	p := Parser{lx: lx, opts: opts, lastSpan: lx.EmptySpan()}
	e, ok := p.parseExpr()
	if ok && !p.at(token.EOF) {
		p.err(diag.SynUnexpectedToken, "unexpected "+p.Peek().String()+" after expression")
		return e, false
	}
	return e, ok
}

// Peek returns the next significant token without consuming it.
func (p *Parser) Peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) parseItems() *ast.File {
	start := p.lx.Peek().Span
	f := &ast.File{Source: start.File}
	for !p.at(token.EOF) && !p.opts.Enough() {
		item, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		f.Items = append(f.Items, item)
	}
	f.Span = start.Cover(p.lastSpan)
	return f
}

// resyncTop skips to the next token that can start an item.
func (p *Parser) resyncTop() {
	for !p.atOr(token.EOF, token.KwFunc, token.KwExtern) {
		p.advance()
	}
}

// resyncStmt skips to the end of the current statement: past the next ';' at
// this nesting level, or up to the '}' closing the enclosing block.
func (p *Parser) resyncStmt() {
	depth := 0
	for {
		switch p.Peek().Kind {
		case token.EOF:
			return
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}
