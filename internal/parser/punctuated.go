package parser

import (
	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/token"
)

// parsePunctuated parses `item (sep item)*` up to and including closing. The
// opening delimiter must already be consumed. An empty list is valid; a
// separator directly before closing is not.
func parsePunctuated[T any](p *Parser, sep, closing token.Kind, item func(*Parser) (T, bool)) (ast.Punctuated[T], token.Token, bool) {
	list := ast.Punctuated[T]{Sep: sep}
	if p.at(closing) {
		return list, p.advance(), true
	}
	for {
		v, ok := item(p)
		if !ok {
			return list, token.Token{}, false
		}
		list.Items = append(list.Items, v)

		if p.at(sep) {
			sepTok := p.advance()
			if p.at(closing) {
				p.report(diag.SynUnexpectedToken, sepTok.Span, "trailing "+sepTok.String()+" before "+closing.String())
				p.advance()
				return list, token.Token{}, false
			}
			continue
		}
		end, ok := p.expect(closing, diag.SynUnclosedDelimiter, "expected "+sep.String()+" or "+closing.String())
		return list, end, ok
	}
}
