// Package ast holds the raw syntax tree produced by the parser.
//
// Nodes are plain values with pointer children. Every expression and
// statement is a Kind tag plus a kind-specific Data payload; the set of
// payload types is closed (each implements an unexported marker method).
package ast
