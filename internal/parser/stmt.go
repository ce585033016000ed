package parser

import (
	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/token"
)

// parseBlock parses `{ stmt* tail? }`. Errors inside the block are reported
// and skipped; only a missing opening brace fails the block itself.
func (p *Parser) parseBlock() (*ast.Block, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return nil, false
	}
	b := &ast.Block{}
	for !p.atOr(token.RBrace, token.EOF) && !p.opts.Enough() {
		if !p.parseBlockEntry(b) {
			p.resyncStmt()
		}
	}
	closing, _ := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block")
	b.Span = open.Span.Cover(p.lastSpan)
	if closing.Kind == token.RBrace {
		b.Span = open.Span.Cover(closing.Span)
	}
	return b, true
}

func (p *Parser) parseBlockEntry(b *ast.Block) bool {
	switch p.Peek().Kind {
	case token.KwLet:
		st, ok := p.parseLet()
		if ok {
			b.Stmts = append(b.Stmts, st)
		}
		return ok
	case token.Semicolon:
		p.advance()
		return true
	}

	x, ok := p.parseExpr()
	if !ok {
		return false
	}
	switch {
	case p.at(token.Assign):
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return false
		}
		semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after assignment")
		st := ast.Stmt{
			Kind: ast.StmtAssign,
			Span: x.Span.Cover(value.Span),
			Data: ast.AssignData{Target: x, Value: value},
		}
		if ok {
			st.Span = st.Span.Cover(semi.Span)
		}
		b.Stmts = append(b.Stmts, st)
		return true
	case p.at(token.Semicolon):
		semi := p.advance()
		st := exprStmt(x, true)
		st.Span = st.Span.Cover(semi.Span)
		b.Stmts = append(b.Stmts, st)
		return true
	case p.at(token.RBrace):
		if x.IsBlockLike() {
			b.Stmts = append(b.Stmts, exprStmt(x, false))
		} else {
			b.Tail = x
		}
		return true
	case x.IsBlockLike():
		b.Stmts = append(b.Stmts, exprStmt(x, false))
		return true
	default:
		p.report(diag.SynExpectSemicolon, x.Span.AtEnd(), "expected ';' after expression, found "+p.Peek().String())
		b.Stmts = append(b.Stmts, exprStmt(x, false))
		return true
	}
}

func exprStmt(x *ast.Expr, semi bool) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtExpr, Span: x.Span, Data: ast.ExprStmtData{Expr: x, Semi: semi}}
}

// parseLet parses `let name [: type] = value;`.
func (p *Parser) parseLet() (ast.Stmt, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name after 'let'")
	if !ok {
		return ast.Stmt{}, false
	}
	data := ast.LetData{Name: ast.At(name.Text, name.Span)}
	if p.at(token.Colon) {
		p.advance()
		ty, ok := p.parseType()
		if !ok {
			return ast.Stmt{}, false
		}
		data.Type = &ty
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let statement"); !ok {
		return ast.Stmt{}, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.Stmt{}, false
	}
	data.Value = value
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let statement")
	if !ok {
		return ast.Stmt{}, false
	}
	return ast.Stmt{Kind: ast.StmtLet, Span: kw.Span.Cover(semi.Span), Data: data}, true
}
