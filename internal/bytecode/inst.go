package bytecode

import (
	"strconv"
)

// Inst is one instruction. A is the single operand; its meaning depends on Op.
type Inst struct {
	_msgpack struct{} `msgpack:",as_array"`
	_        struct{} `cbor:",toarray"`

	Op Op
	A  int64
}

func I(op Op) Inst             { return Inst{Op: op} }
func IA(op Op, a int64) Inst   { return Inst{Op: op, A: a} }
func Push(v int64) Inst        { return Inst{Op: OpPush, A: v} }
func Jump(op Op, d int64) Inst { return Inst{Op: op, A: d} }

func PushBool(v bool) Inst {
	if v {
		return Inst{Op: OpPushBool, A: 1}
	}
	return Inst{Op: OpPushBool}
}

func (in Inst) String() string {
	switch {
	case in.Op == OpPushBool:
		return in.Op.String() + " " + strconv.FormatBool(in.A != 0)
	case in.Op.IsJump():
		if in.A >= 0 {
			return in.Op.String() + " +" + itoa(in.A)
		}
		return in.Op.String() + " " + itoa(in.A)
	case in.Op.HasOperand():
		return in.Op.String() + " " + itoa(in.A)
	default:
		return in.Op.String()
	}
}

// Target returns the index a jump at index at continues from.
func (in Inst) Target(at int) int {
	return at + 1 + int(in.A)
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
