package vm

import (
	"fmt"
)

// HostFunc implements an extern function. args are in declaration order.
// The returned Value is pushed only when the extern declares a result.
type HostFunc func(vm *VM, args []Value) (Value, error)

// DefaultExterns returns the host functions every VM knows about.
func DefaultExterns() map[string]HostFunc {
	return map[string]HostFunc{
		"print": hostPrint,
	}
}

// hostPrint writes each argument on its own line.
func hostPrint(vm *VM, args []Value) (Value, error) {
	for _, a := range args {
		if a.Kind == KindInvalid {
			return Value{}, fmt.Errorf("print: argument is %s", a.Kind)
		}
		if _, err := fmt.Fprintln(vm.opts.Stdout, a.String()); err != nil {
			return Value{}, fmt.Errorf("print: %w", err)
		}
	}
	return Value{}, nil
}
