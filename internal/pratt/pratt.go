// Package pratt implements a generic operator-precedence (Pratt) parsing engine.
//
// The engine owns two handler tables keyed by token kind. Prefix (nud)
// handlers start an expression; infix (led) handlers extend an already
// parsed left operand and carry their own binding power. Handlers receive the
// engine back so that they can recurse at the binding power their operator
// needs.
package pratt

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/rknit/whiskc/internal/token"
)

// Context is the token source a parse runs against. Handlers consume tokens
// through their own context value; the engine only peeks.
type Context interface {
	Peek() token.Token
}

// NudFunc parses an expression that starts at the next token.
type NudFunc[C Context, E any, BP cmp.Ordered] func(e *Engine[C, E, BP], ctx C) (E, error)

// LedFunc extends left using the operator at the next token. bp is the
// binding power the handler was registered with.
type LedFunc[C Context, E any, BP cmp.Ordered] func(e *Engine[C, E, BP], ctx C, left E, bp BP) (E, error)

type led[C Context, E any, BP cmp.Ordered] struct {
	bp BP
	fn LedFunc[C, E, BP]
}

// ErrHandled is returned by handlers that already reported their failure.
// Callers must not report it a second time.
var ErrHandled = errors.New("pratt: handler failed")

// UnexpectedTokenError means no prefix handler exists for Token.
type UnexpectedTokenError struct {
	Token token.Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %s, expected an expression", e.Token)
}

// UnexpectedInfixError means Token appeared in infix position but no infix
// handler exists for it.
type UnexpectedInfixError struct {
	Token token.Token
}

func (e *UnexpectedInfixError) Error() string {
	return fmt.Sprintf("unexpected infix operator %s", e.Token)
}

// Engine is a table-driven Pratt parser. Handler tables are filled once and
// read concurrently afterwards.
type Engine[C Context, E any, BP cmp.Ordered] struct {
	nuds map[token.Kind]NudFunc[C, E, BP]
	leds map[token.Kind]led[C, E, BP]

	// InfixCandidate classifies tokens that can only be meaningful as an
	// operator after an operand. When such a token has no led handler the
	// engine fails with UnexpectedInfixError instead of stopping silently.
	InfixCandidate func(token.Kind) bool
}

// New returns an engine with empty handler tables.
func New[C Context, E any, BP cmp.Ordered]() *Engine[C, E, BP] {
	return &Engine[C, E, BP]{
		nuds: make(map[token.Kind]NudFunc[C, E, BP]),
		leds: make(map[token.Kind]led[C, E, BP]),
	}
}

// Nud registers the prefix handler for kind, replacing any previous one.
func (e *Engine[C, E, BP]) Nud(kind token.Kind, fn NudFunc[C, E, BP]) {
	e.nuds[kind] = fn
}

// Led registers the infix handler and binding power for kind.
func (e *Engine[C, E, BP]) Led(kind token.Kind, bp BP, fn LedFunc[C, E, BP]) {
	e.leds[kind] = led[C, E, BP]{bp: bp, fn: fn}
}

// HasNud reports whether kind can start an expression.
func (e *Engine[C, E, BP]) HasNud(kind token.Kind) bool {
	_, ok := e.nuds[kind]
	return ok
}

// BindingPower reports the registered infix binding power of kind.
func (e *Engine[C, E, BP]) BindingPower(kind token.Kind) (BP, bool) {
	l, ok := e.leds[kind]
	return l.bp, ok
}

// Parse parses one expression whose infix operators all bind tighter than minBP.
func (e *Engine[C, E, BP]) Parse(ctx C, minBP BP) (E, error) {
	var zero E

	tok := ctx.Peek()
	nud, ok := e.nuds[tok.Kind]
	if !ok {
		return zero, &UnexpectedTokenError{Token: tok}
	}
	left, err := nud(e, ctx)
	if err != nil {
		return zero, err
	}

	for {
		tok = ctx.Peek()
		l, ok := e.leds[tok.Kind]
		if !ok {
			if e.InfixCandidate != nil && e.InfixCandidate(tok.Kind) {
				return zero, &UnexpectedInfixError{Token: tok}
			}
			return left, nil
		}
		if l.bp <= minBP {
			return left, nil
		}
		if left, err = l.fn(e, ctx, left, l.bp); err != nil {
			return zero, err
		}
	}
}
