package symbols

import (
	"github.com/rknit/whiskc/internal/source"
)

// TypeKind classifies the builtin types.
type TypeKind uint8

const (
	KindUnit TypeKind = iota
	KindInt
	KindBool
)

type Type struct {
	Name string
	Kind TypeKind
}

// Func is a declared function. Extern functions have no body.
type Func struct {
	Name   string
	Span   source.Span // name location
	Params []VarID
	Result TypeID
	Extern bool
	Entry  BlockID
}

// Block is a lexical scope. Names are bound in declaration order; a later
// binding of the same name shadows the earlier one from that point on.
type Block struct {
	Parent BlockID
	Func   FuncID
	Span   source.Span
	names  map[string]VarID
}

type Var struct {
	Name  string
	Type  TypeID
	Span  source.Span
	Block BlockID
	Param bool
}

// Table owns all symbol arenas of one compilation.
type Table struct {
	Funcs  *Arena[FuncID, Func]
	Blocks *Arena[BlockID, Block]
	Vars   *Arena[VarID, Var]
	Types  *Arena[TypeID, Type]

	funcNames map[string]FuncID
	typeNames map[string]TypeID

	Unit TypeID
	Int  TypeID
	Bool TypeID
}

// NewTable returns a table with the builtin types registered.
func NewTable() *Table {
	t := &Table{
		Funcs:     NewArena[FuncID, Func]("funcs", 0),
		Blocks:    NewArena[BlockID, Block]("blocks", 0),
		Vars:      NewArena[VarID, Var]("vars", 0),
		Types:     NewArena[TypeID, Type]("types", 4),
		funcNames: make(map[string]FuncID),
		typeNames: make(map[string]TypeID),
	}
	t.Unit = t.addType("unit", KindUnit)
	t.Int = t.addType("int", KindInt)
	t.Bool = t.addType("bool", KindBool)
	return t
}

func (t *Table) addType(name string, kind TypeKind) TypeID {
	id := t.Types.New(Type{Name: name, Kind: kind})
	t.typeNames[name] = id
	return id
}

// LookupType finds a builtin type by name.
func (t *Table) LookupType(name string) (TypeID, bool) {
	id, ok := t.typeNames[name]
	return id, ok
}

// TypeName returns the name of id or "<invalid>".
func (t *Table) TypeName(id TypeID) string {
	if ty := t.Types.Get(id); ty != nil {
		return ty.Name
	}
	return "<invalid>"
}

// DeclareFunc registers f. When the name is taken it returns the existing
// ID and false.
func (t *Table) DeclareFunc(f Func) (FuncID, bool) {
	if prev, ok := t.funcNames[f.Name]; ok {
		return prev, false
	}
	id := t.Funcs.New(f)
	t.funcNames[f.Name] = id
	return id, true
}

func (t *Table) LookupFunc(name string) (FuncID, bool) {
	id, ok := t.funcNames[name]
	return id, ok
}

// NewBlock opens a scope nested in parent.
func (t *Table) NewBlock(parent BlockID, fn FuncID, span source.Span) BlockID {
	return t.Blocks.New(Block{Parent: parent, Func: fn, Span: span, names: make(map[string]VarID)})
}

// DeclareVar binds v in its block, shadowing any earlier binding of the name.
func (t *Table) DeclareVar(v Var) VarID {
	id := t.Vars.New(v)
	if b := t.Blocks.Get(v.Block); b != nil {
		b.names[v.Name] = id
	}
	return id
}

// LookupVar searches block and its ancestors, innermost first.
func (t *Table) LookupVar(block BlockID, name string) (VarID, bool) {
	for block.IsValid() {
		b := t.Blocks.Get(block)
		if b == nil {
			break
		}
		if id, ok := b.names[name]; ok {
			return id, true
		}
		block = b.Parent
	}
	return NoVarID, false
}
