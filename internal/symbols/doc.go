// Package symbols holds the tables the resolver fills: functions, blocks,
// variables and types, each addressed by a dense 1-based ID. ID zero is the
// invalid sentinel in every table.
package symbols
