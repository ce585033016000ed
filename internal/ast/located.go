package ast

import (
	"strings"

	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/token"
)

// Located pairs a value with the source range it came from.
type Located[T any] struct {
	Value T
	Span  source.Span
}

// At builds a Located value.
func At[T any](v T, sp source.Span) Located[T] {
	return Located[T]{Value: v, Span: sp}
}

// Punctuated is an ordered list that was written with Sep between elements.
type Punctuated[T any] struct {
	Items []T
	Sep   token.Kind
}

func (p Punctuated[T]) Len() int { return len(p.Items) }

// Join renders the items with the separator spelling between them.
func (p Punctuated[T]) Join(render func(T) string) string {
	parts := make([]string, len(p.Items))
	for i, it := range p.Items {
		parts[i] = render(it)
	}
	return strings.Join(parts, p.Sep.String()+" ")
}
