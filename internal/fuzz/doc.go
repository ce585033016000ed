// Package fuzztests houses Go fuzz harnesses for the whisk pipeline. They
// feed arbitrary bytes through the lexer, the parser and the full
// compile-and-run path and fail on panics or hangs; diagnostics and
// runtime errors are expected outcomes.
package fuzztests
