package token

import "github.com/rknit/whiskc/internal/source"

// TriviaKind classifies skipped source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	default:
		return "Unknown"
	}
}

// Trivia is whitespace or a comment preceding a significant token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
