// Package hir is the resolved form of a whisk program.
//
// Every identifier is replaced by the symbol it refers to, every expression
// carries its type, and control flow is expressed through statements. The
// tree is produced by sema, optionally simplified by FoldModule and consumed
// by codegen.
package hir
