package parser

import (
	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/token"
)

func (p *Parser) parseItem() (*ast.Item, bool) {
	switch p.Peek().Kind {
	case token.KwFunc:
		return p.parseFunc()
	case token.KwExtern:
		return p.parseExtern()
	default:
		p.err(diag.SynUnexpectedTopLevel, "expected 'func' or 'extern func', found "+p.Peek().String())
		return nil, false
	}
}

// parseFunc parses `func name(params) [type] { body }`.
func (p *Parser) parseFunc() (*ast.Item, bool) {
	sig, ok := p.parseSig()
	if !ok {
		return nil, false
	}

	if !p.at(token.LBrace) {
		// parse whatever stands in the body position so that recovery
		// resumes after it
		if exprs.HasNud(p.Peek().Kind) {
			if _, ok := p.parseExpr(); !ok {
				return nil, false
			}
		}
		p.report(diag.SynMissingFunctionBody, sig.Name.Span, "function '"+sig.Name.Value+"' has no body block")
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.Item{Kind: ast.ItemFunc, Sig: sig, Body: body, Span: sig.Span.Cover(body.Span)}, true
}

// parseExtern parses `extern func name(params) [type];`.
func (p *Parser) parseExtern() (*ast.Item, bool) {
	kw := p.advance()
	if !p.at(token.KwFunc) {
		p.err(diag.SynUnexpectedToken, "expected 'func' after 'extern', found "+p.Peek().String())
		return nil, false
	}
	sig, ok := p.parseSig()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after extern declaration")
	if !ok {
		return nil, false
	}
	return &ast.Item{Kind: ast.ItemExtern, Sig: sig, Span: kw.Span.Cover(semi.Span)}, true
}

func (p *Parser) parseSig() (ast.FuncSig, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return ast.FuncSig{}, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.FuncSig{}, false
	}
	params, closing, ok := parsePunctuated(p, token.Comma, token.RParen, (*Parser).parseParam)
	if !ok {
		return ast.FuncSig{}, false
	}

	sig := ast.FuncSig{
		Name:   ast.At(name.Text, name.Span),
		Params: params,
		Span:   kw.Span.Cover(closing.Span),
	}
	if p.atOr(token.LBrace, token.Semicolon) {
		sig.Result = ast.At(ast.UnitTypeName, closing.Span.AtEnd())
		sig.Implicit = true
		return sig, true
	}
	result, ok := p.parseType()
	if !ok {
		return ast.FuncSig{}, false
	}
	sig.Result = result
	sig.Span = sig.Span.Cover(result.Span)
	return sig, true
}

// parseParam parses `name type`.
func (p *Parser) parseParam() (ast.Param, bool) {
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
	if !ok {
		return ast.Param{}, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.Param{}, false
	}
	return ast.Param{Name: ast.At(name.Text, name.Span), Type: ty}, true
}
