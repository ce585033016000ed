// Package vm executes compiled whisk programs.
//
// The machine has one operand stack shared by all frames and a call stack of
// frames, each owning the local slots of one function activation. Runtime
// failures abort the run with a *Error carrying a stable code and a
// backtrace.
package vm
