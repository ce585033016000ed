package hir

import (
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/symbols"
)

// Module is the resolved form of one source file.
type Module struct {
	Name    string
	Source  source.FileID
	Funcs   []*Func // in declaration order, externs included
	Symbols *symbols.Table
}

type Param struct {
	Name string
	Var  symbols.VarID
	Type symbols.TypeID
}

// Func is a function definition or extern declaration. Body is nil for externs.
type Func struct {
	ID     symbols.FuncID
	Name   string
	Params []Param
	Result symbols.TypeID
	Body   *Block
	Span   source.Span
}

func (f *Func) IsExtern() bool { return f.Body == nil }

// Func returns the function named name, or nil.
func (m *Module) Func(name string) *Func {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}
