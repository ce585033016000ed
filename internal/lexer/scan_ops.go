package lexer

import (
	"fmt"

	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/token"
)

// scanOperatorOrPunct is greedy: two-byte operators are tried before single bytes.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	switch {
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	}

	switch lx.cursor.Peek() {
	case '+':
		lx.cursor.Bump()
		return emit(token.Plus)
	case '-':
		lx.cursor.Bump()
		return emit(token.Minus)
	case '!':
		lx.cursor.Bump()
		return emit(token.Bang)
	case '<':
		lx.cursor.Bump()
		return emit(token.Lt)
	case '>':
		lx.cursor.Bump()
		return emit(token.Gt)
	case '=':
		lx.cursor.Bump()
		return emit(token.Assign)
	case '(':
		lx.cursor.Bump()
		return emit(token.LParen)
	case ')':
		lx.cursor.Bump()
		return emit(token.RParen)
	case '{':
		lx.cursor.Bump()
		return emit(token.LBrace)
	case '}':
		lx.cursor.Bump()
		return emit(token.RBrace)
	case '[':
		lx.cursor.Bump()
		return emit(token.LBracket)
	case ']':
		lx.cursor.Bump()
		return emit(token.RBracket)
	case ',':
		lx.cursor.Bump()
		return emit(token.Comma)
	case ';':
		lx.cursor.Bump()
		return emit(token.Semicolon)
	case ':':
		lx.cursor.Bump()
		return emit(token.Colon)
	}

	// unknown byte or rune: consume a whole rune so spans stay on boundaries
	lx.bumpRune()
	tok := emit(token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", tok.Text))
	return tok
}

// try2 consumes two bytes when they match a and b.
func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}
