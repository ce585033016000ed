// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic data structures that capture user-facing findings
//     produced by the lexer, parser and resolver.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not perform formatting or IO. Rendering lives in
// internal/diagfmt. Internal failures of later stages (code generation,
// execution) are ordinary Go errors and never travel through this package.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity is a tri-level enum (Info, Warning, Error).
//   - Code is a compact numeric identifier with a stable string form
//     (LEX1001, SYN2001, SEM3001).
//   - Message is short human-oriented text.
//   - Primary is the source.Span pointing at the problem.
//   - Notes are optional secondary spans with extra context.
//
// Bag keeps diagnostics in insertion order up to a fixed cap. Sort orders them
// by file, offset and severity for stable output.
package diag
