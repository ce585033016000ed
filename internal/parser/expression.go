package parser

import (
	"errors"
	"strconv"

	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/pratt"
	"github.com/rknit/whiskc/internal/token"
)

type exprEngine = pratt.Engine[*Parser, *ast.Expr, BindingPower]

var exprs *exprEngine

func init() {
	exprs = newExprEngine()
}

func newExprEngine() *exprEngine {
	e := pratt.New[*Parser, *ast.Expr, BindingPower]()

	e.Nud(token.IntLit, nudInt)
	e.Nud(token.KwTrue, nudBool)
	e.Nud(token.KwFalse, nudBool)
	e.Nud(token.Ident, nudIdent)
	e.Nud(token.LParen, nudGroup)
	e.Nud(token.LBracket, nudArray)
	e.Nud(token.Minus, nudUnary)
	e.Nud(token.Bang, nudUnary)
	e.Nud(token.LBrace, nudBlock)
	e.Nud(token.KwIf, nudIf)
	e.Nud(token.KwLoop, nudLoop)
	e.Nud(token.KwReturn, nudReturn)
	e.Nud(token.KwBreak, nudJump)
	e.Nud(token.KwContinue, nudJump)
	e.Nud(token.Invalid, nudInvalid)

	e.Led(token.OrOr, BPLogicalOr, ledBinary)
	e.Led(token.AndAnd, BPLogicalAnd, ledBinary)
	for _, k := range []token.Kind{token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq} {
		e.Led(k, BPComparative, ledBinary)
	}
	e.Led(token.Plus, BPAdditive, ledBinary)
	e.Led(token.Minus, BPAdditive, ledBinary)
	e.Led(token.KwAs, BPCast, ledCast)
	e.Led(token.LParen, BPCall, ledCall)
	e.Led(token.LBracket, BPIndex, ledIndex)

	e.InfixCandidate = func(k token.Kind) bool { return k == token.Bang }
	return e
}

// parseExpr parses a full expression and reports engine failures.
func (p *Parser) parseExpr() (*ast.Expr, bool) {
	return p.parseExprBP(BPZero)
}

func (p *Parser) parseExprBP(min BindingPower) (*ast.Expr, bool) {
	x, err := exprs.Parse(p, min)
	if err == nil {
		return x, true
	}
	p.reportExprError(err)
	return nil, false
}

func (p *Parser) reportExprError(err error) {
	var unexpected *pratt.UnexpectedTokenError
	var infix *pratt.UnexpectedInfixError
	switch {
	case errors.Is(err, pratt.ErrHandled):
	case errors.As(err, &unexpected):
		sp := unexpected.Token.Span
		if unexpected.Token.Kind == token.EOF {
			sp = p.diagnosticSpan()
		}
		p.report(diag.SynUnexpectedToken, sp, "expected expression, found "+unexpected.Token.String())
	case errors.As(err, &infix):
		p.report(diag.SynUnexpectedInfix, infix.Token.Span, infix.Token.String()+" is not an infix operator")
	default:
		p.err(diag.SynUnexpectedToken, err.Error())
	}
}

// sub parses an operand from inside a handler. Failures are reported here so
// the enclosing handler can bail out with ErrHandled.
func sub(e *exprEngine, p *Parser, min BindingPower) (*ast.Expr, error) {
	x, err := e.Parse(p, min)
	if err != nil {
		p.reportExprError(err)
		return nil, pratt.ErrHandled
	}
	return x, nil
}

func nudInt(_ *exprEngine, p *Parser) (*ast.Expr, error) {
	tok := p.advance()
	v, err := strconv.ParseInt(tok.Text, 0, 64)
	if err != nil {
		p.report(diag.SynIntOverflow, tok.Span, "integer literal "+tok.Text+" does not fit in 64 bits")
		return nil, pratt.ErrHandled
	}
	return &ast.Expr{Kind: ast.ExprInt, Span: tok.Span, Data: ast.IntData{Value: v}}, nil
}

func nudBool(_ *exprEngine, p *Parser) (*ast.Expr, error) {
	tok := p.advance()
	return &ast.Expr{Kind: ast.ExprBool, Span: tok.Span, Data: ast.BoolData{Value: tok.Kind == token.KwTrue}}, nil
}

func nudIdent(_ *exprEngine, p *Parser) (*ast.Expr, error) {
	tok := p.advance()
	return &ast.Expr{Kind: ast.ExprIdent, Span: tok.Span, Data: ast.IdentData{Name: tok.Text}}, nil
}

// nudInvalid swallows a token the lexer has already complained about.
func nudInvalid(_ *exprEngine, p *Parser) (*ast.Expr, error) {
	p.advance()
	return nil, pratt.ErrHandled
}

func nudGroup(e *exprEngine, p *Parser) (*ast.Expr, error) {
	open := p.advance()
	inner, err := sub(e, p, BPZero)
	if err != nil {
		return nil, err
	}
	closing, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
	if !ok {
		return nil, pratt.ErrHandled
	}
	return &ast.Expr{Kind: ast.ExprGroup, Span: open.Span.Cover(closing.Span), Data: ast.GroupData{Inner: inner}}, nil
}

func nudArray(_ *exprEngine, p *Parser) (*ast.Expr, error) {
	open := p.advance()
	elems, closing, ok := parsePunctuated(p, token.Comma, token.RBracket, (*Parser).parseExpr)
	if !ok {
		return nil, pratt.ErrHandled
	}
	return &ast.Expr{Kind: ast.ExprArray, Span: open.Span.Cover(closing.Span), Data: ast.ArrayData{Elems: elems}}, nil
}

func nudUnary(e *exprEngine, p *Parser) (*ast.Expr, error) {
	op := p.advance()
	operand, err := sub(e, p, BPUnary)
	if err != nil {
		return nil, err
	}
	kind := ast.UnaryNeg
	if op.Kind == token.Bang {
		kind = ast.UnaryNot
	}
	return &ast.Expr{
		Kind: ast.ExprUnary,
		Span: op.Span.Cover(operand.Span),
		Data: ast.UnaryData{Op: kind, Operand: operand},
	}, nil
}

func nudBlock(_ *exprEngine, p *Parser) (*ast.Expr, error) {
	b, ok := p.parseBlock()
	if !ok {
		return nil, pratt.ErrHandled
	}
	return &ast.Expr{Kind: ast.ExprBlock, Span: b.Span, Data: b}, nil
}

func nudIf(e *exprEngine, p *Parser) (*ast.Expr, error) {
	kw := p.advance()
	cond, err := sub(e, p, BPZero)
	if err != nil {
		return nil, err
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, pratt.ErrHandled
	}
	data := ast.IfData{Cond: cond, Then: then}
	span := kw.Span.Cover(then.Span)

	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			nested, err := nudIf(e, p)
			if err != nil {
				return nil, err
			}
			data.Else = &ast.Block{Tail: nested, Span: nested.Span}
		} else {
			els, ok := p.parseBlock()
			if !ok {
				return nil, pratt.ErrHandled
			}
			data.Else = els
		}
		span = span.Cover(data.Else.Span)
	}
	return &ast.Expr{Kind: ast.ExprIf, Span: span, Data: data}, nil
}

func nudLoop(_ *exprEngine, p *Parser) (*ast.Expr, error) {
	kw := p.advance()
	body, ok := p.parseBlock()
	if !ok {
		return nil, pratt.ErrHandled
	}
	return &ast.Expr{Kind: ast.ExprLoop, Span: kw.Span.Cover(body.Span), Data: ast.LoopData{Body: body}}, nil
}

func nudReturn(e *exprEngine, p *Parser) (*ast.Expr, error) {
	kw := p.advance()
	ret := &ast.Expr{Kind: ast.ExprReturn, Span: kw.Span, Data: ast.ReturnData{}}
	if p.atOr(token.Semicolon, token.RBrace, token.EOF) {
		return ret, nil
	}
	value, err := sub(e, p, BPZero)
	if err != nil {
		return nil, err
	}
	ret.Span = kw.Span.Cover(value.Span)
	ret.Data = ast.ReturnData{Value: value}
	return ret, nil
}

func nudJump(_ *exprEngine, p *Parser) (*ast.Expr, error) {
	kw := p.advance()
	if kw.Kind == token.KwBreak {
		return &ast.Expr{Kind: ast.ExprBreak, Span: kw.Span, Data: ast.BreakData{}}, nil
	}
	return &ast.Expr{Kind: ast.ExprContinue, Span: kw.Span, Data: ast.ContinueData{}}, nil
}

func ledBinary(e *exprEngine, p *Parser, left *ast.Expr, bp BindingPower) (*ast.Expr, error) {
	opTok := p.advance()
	op, _ := ast.BinaryOpFor(opTok.Kind)
	right, err := sub(e, p, bp)
	if err != nil {
		return nil, err
	}
	return &ast.Expr{
		Kind: ast.ExprBinary,
		Span: left.Span.Cover(right.Span),
		Data: ast.BinaryData{Op: op, OpPos: opTok.Span, Left: left, Right: right},
	}, nil
}

func ledCast(_ *exprEngine, p *Parser, left *ast.Expr, _ BindingPower) (*ast.Expr, error) {
	p.advance()
	target, ok := p.parseType()
	if !ok {
		return nil, pratt.ErrHandled
	}
	return &ast.Expr{
		Kind: ast.ExprCast,
		Span: left.Span.Cover(target.Span),
		Data: ast.CastData{Value: left, Target: target},
	}, nil
}

func ledCall(_ *exprEngine, p *Parser, left *ast.Expr, _ BindingPower) (*ast.Expr, error) {
	p.advance()
	args, closing, ok := parsePunctuated(p, token.Comma, token.RParen, (*Parser).parseExpr)
	if !ok {
		return nil, pratt.ErrHandled
	}
	return &ast.Expr{
		Kind: ast.ExprCall,
		Span: left.Span.Cover(closing.Span),
		Data: ast.CallData{Callee: left, Args: args},
	}, nil
}

func ledIndex(e *exprEngine, p *Parser, left *ast.Expr, _ BindingPower) (*ast.Expr, error) {
	p.advance()
	index, err := sub(e, p, BPZero)
	if err != nil {
		return nil, err
	}
	closing, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'")
	if !ok {
		return nil, pratt.ErrHandled
	}
	return &ast.Expr{
		Kind: ast.ExprIndex,
		Span: left.Span.Cover(closing.Span),
		Data: ast.IndexData{Base: left, Index: index},
	}, nil
}
