package vm

import "strconv"

// Kind tags a runtime value.
type Kind uint8

const (
	KindInvalid Kind = iota // never-written local
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is a primitive runtime value. Booleans are stored as 0 or 1 in I.
type Value struct {
	Kind Kind
	I    int64
}

func Int(v int64) Value { return Value{Kind: KindInt, I: v} }

func Bool(b bool) Value {
	if b {
		return Value{Kind: KindBool, I: 1}
	}
	return Value{Kind: KindBool}
}

// AsBool returns the boolean payload; only meaningful for KindBool.
func (v Value) AsBool() bool { return v.I != 0 }

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I, 10)
	case KindBool:
		return strconv.FormatBool(v.AsBool())
	default:
		return "<uninit>"
	}
}
