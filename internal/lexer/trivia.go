package lexer

import (
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/token"
)

// collectLeadingTrivia gathers whitespace and comments before the next significant token.
//   - runs of ' ', '\t', '\r' become one TriviaSpace
//   - runs of '\n' become one TriviaNewline
//   - //... up to the newline is a TriviaLineComment
//   - /* ... */ nests; an unterminated one is reported and cut at EOF
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\r':
			for b2 := lx.cursor.Peek(); b2 == ' ' || b2 == '\t' || b2 == '\r'; b2 = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
		case b == '/' && lx.scanComment():
			// appended by scanComment
		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

func (lx *Lexer) scanComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' || (b1 != '/' && b1 != '*') {
		return false
	}
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()

	if b1 == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaLineComment, start)
		return true
	}

	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if c0, c1, ok := lx.cursor.Peek2(); ok {
			if c0 == '/' && c1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if c0 == '*' && c1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	lx.pushTrivia(token.TriviaBlockComment, start)
	return true
}
