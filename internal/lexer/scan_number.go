package lexer

import (
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/token"
)

// scanNumber accepts 123, 1_000, 0x1F and 0b1010. The numeric value is
// computed by the parser; the lexer only validates the shape.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	digit := isDec

	prefixed := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		switch b1 {
		case 'x', 'X':
			digit, prefixed = isHex, true
		case 'b', 'B':
			digit, prefixed = isBin, true
		}
	}
	if prefixed {
		lx.cursor.Bump()
		lx.cursor.Bump()
		if !digit(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digits after integer base prefix")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
	}

	for digit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// a letter glued to the digits (12ab, 0x1g) makes the whole run invalid
	if b := lx.cursor.Peek(); isIdentContinueByte(b) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "invalid digit in integer literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
