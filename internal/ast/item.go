package ast

import (
	"github.com/rknit/whiskc/internal/source"
)

// TypeRef is a written type name such as int or bool.
type TypeRef = Located[string]

// UnitTypeName is the implicit return type of functions without one.
const UnitTypeName = "unit"

type Param struct {
	Name Located[string]
	Type TypeRef
}

// FuncSig is the part of a function shared by definitions and extern declarations.
type FuncSig struct {
	Name     Located[string]
	Params   Punctuated[Param]
	Result   TypeRef
	Implicit bool // Result was omitted in the source
	Span     source.Span
}

type ItemKind uint8

const (
	ItemFunc ItemKind = iota
	ItemExtern
)

func (k ItemKind) String() string {
	if k == ItemExtern {
		return "ExternFunction"
	}
	return "Function"
}

// Item is a top-level declaration. Body is nil for extern functions.
type Item struct {
	Kind ItemKind
	Sig  FuncSig
	Body *Block
	Span source.Span
}

// File is the parse result of one source file.
type File struct {
	Source source.FileID
	Items  []*Item
	Span   source.Span
}
