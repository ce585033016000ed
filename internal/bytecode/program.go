package bytecode

import (
	"fmt"
)

// StartFunc is the name of the generated entry stub.
const StartFunc = "__start"

type Function struct {
	Name         string `msgpack:"name" cbor:"1,keyasint"`
	NumParams    uint32 `msgpack:"params" cbor:"2,keyasint"`
	NumLocals    uint32 `msgpack:"locals" cbor:"3,keyasint"` // params included
	ReturnsValue bool   `msgpack:"ret" cbor:"4,keyasint"`
	Code         []Inst `msgpack:"code" cbor:"5,keyasint"`
}

// Extern is a function provided by the host at run time.
type Extern struct {
	Name         string `msgpack:"name" cbor:"1,keyasint"`
	NumParams    uint32 `msgpack:"params" cbor:"2,keyasint"`
	ReturnsValue bool   `msgpack:"ret" cbor:"3,keyasint"`
}

// Program is a compiled whisk program. Entry indexes Funcs, or is -1 when
// the program has no entry point.
type Program struct {
	Funcs   []Function `msgpack:"funcs" cbor:"1,keyasint"`
	Externs []Extern   `msgpack:"externs" cbor:"2,keyasint"`
	Entry   int        `msgpack:"entry" cbor:"3,keyasint"`
}

// FuncIndex returns the index of the function named name.
func (p *Program) FuncIndex(name string) (int, bool) {
	for i := range p.Funcs {
		if p.Funcs[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// Validate checks operands that can be checked without running the code:
// call targets, extern indexes, local slots and jump targets.
func (p *Program) Validate() error {
	if p.Entry < -1 || p.Entry >= len(p.Funcs) {
		return fmt.Errorf("entry %d out of range", p.Entry)
	}
	for fi := range p.Funcs {
		f := &p.Funcs[fi]
		if f.NumParams > f.NumLocals {
			return fmt.Errorf("%s: %d params exceed %d locals", f.Name, f.NumParams, f.NumLocals)
		}
		for ip, in := range f.Code {
			if err := p.validateInst(f, ip, in); err != nil {
				return fmt.Errorf("%s+%04d %s: %w", f.Name, ip, in, err)
			}
		}
	}
	return nil
}

func (p *Program) validateInst(f *Function, ip int, in Inst) error {
	switch {
	case !in.Op.Valid():
		return fmt.Errorf("invalid opcode %d", in.Op)
	case in.Op == OpLoad || in.Op == OpStore:
		if in.A < 0 || in.A >= int64(f.NumLocals) {
			return fmt.Errorf("slot out of range")
		}
	case in.Op.IsJump():
		if t := in.Target(ip); t < 0 || t > len(f.Code) {
			return fmt.Errorf("jump target %d out of range", t)
		}
	case in.Op == OpCall:
		if in.A < 0 || in.A >= int64(len(p.Funcs)) {
			return fmt.Errorf("call target out of range")
		}
	case in.Op == OpCallExtern:
		if in.A < 0 || in.A >= int64(len(p.Externs)) {
			return fmt.Errorf("extern index out of range")
		}
	}
	return nil
}
