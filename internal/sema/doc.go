// Package sema resolves a parsed whisk file into HIR.
//
// Resolution runs in two phases. The first registers every function
// signature so that bodies may call functions declared later in the file.
// The second walks each body, binds names to symbols and annotates every
// expression with its type. Problems are collected as diagnostics; a
// resolution either succeeds completely or fails with *Errors.
package sema
