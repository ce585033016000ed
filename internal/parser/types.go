package parser

import (
	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/token"
)

// parseType parses a named type. Type names are checked by the resolver.
func (p *Parser) parseType() (ast.TypeRef, bool) {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectType, "expected type name, found "+p.Peek().String())
		return ast.TypeRef{}, false
	}
	tok := p.advance()
	return ast.At(tok.Text, tok.Span), true
}
