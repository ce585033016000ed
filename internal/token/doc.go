// Package token defines lexical token kinds and trivia for whisk sources.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Comments and whitespace never appear in the main stream; they are
//     attached to the following token as leading Trivia.
//   - Type names (int, bool, unit) are identifiers. They are recognized by
//     the resolver, not the lexer.
package token
