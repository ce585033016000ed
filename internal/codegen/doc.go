// Package codegen lowers resolved HIR to stack-machine bytecode.
//
// Every expression leaves exactly one value on the operand stack (none for
// unit calls) and every statement leaves the stack as it found it. Locals
// live in numbered slots; sibling scopes reuse slots and a function's slot
// count is the deepest nesting it reaches.
package codegen
