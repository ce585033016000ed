package token

import (
	"fmt"

	"github.com/rknit/whiskc/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is an integer or boolean literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

func (t Token) String() string {
	switch t.Kind {
	case Ident, IntLit:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	default:
		return fmt.Sprintf("%q", t.Kind.String())
	}
}
