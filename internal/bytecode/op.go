package bytecode

// Op is an instruction opcode.
type Op uint8

const (
	OpInvalid Op = iota
	OpPush       // push int A
	OpPushBool   // push bool A != 0
	OpPop
	OpLoad  // push local A
	OpStore // pop into local A
	OpAdd
	OpSub
	OpNeg
	OpNot
	OpAnd
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpToInt
	OpToBool
	OpJmp      // jump by A
	OpJmpFalse // pop bool, jump by A when false
	OpCall     // call function A
	OpCallExtern
	OpRet
	OpHlt
	opCount
)

var opNames = [...]string{
	OpInvalid:    "Invalid",
	OpPush:       "Push",
	OpPushBool:   "PushBool",
	OpPop:        "Pop",
	OpLoad:       "Load",
	OpStore:      "Store",
	OpAdd:        "Add",
	OpSub:        "Sub",
	OpNeg:        "Neg",
	OpNot:        "Not",
	OpAnd:        "And",
	OpOr:         "Or",
	OpEq:         "Eq",
	OpNe:         "Ne",
	OpLt:         "Lt",
	OpLe:         "Le",
	OpGt:         "Gt",
	OpGe:         "Ge",
	OpToInt:      "ToInt",
	OpToBool:     "ToBool",
	OpJmp:        "Jmp",
	OpJmpFalse:   "JmpFalse",
	OpCall:       "Call",
	OpCallExtern: "CallExtern",
	OpRet:        "Ret",
	OpHlt:        "Hlt",
}

func (op Op) String() string {
	if op < opCount {
		return opNames[op]
	}
	return "Op(" + itoa(int64(op)) + ")"
}

// Valid reports whether op is a defined opcode.
func (op Op) Valid() bool {
	return op > OpInvalid && op < opCount
}

// HasOperand reports whether op uses the A field.
func (op Op) HasOperand() bool {
	switch op {
	case OpPush, OpPushBool, OpLoad, OpStore, OpJmp, OpJmpFalse, OpCall, OpCallExtern:
		return true
	default:
		return false
	}
}

// IsJump reports whether A is a displacement.
func (op Op) IsJump() bool {
	return op == OpJmp || op == OpJmpFalse
}
