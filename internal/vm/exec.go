package vm

import (
	"github.com/rknit/whiskc/internal/bytecode"
)

// exec runs one decoded instruction. Failures panic with *Error and are
// recovered by Step.
func (vm *VM) exec(fr *Frame, in bytecode.Inst) {
	switch in.Op {
	case bytecode.OpPush:
		vm.push(Int(in.A))
	case bytecode.OpPushBool:
		vm.push(Bool(in.A != 0))
	case bytecode.OpPop:
		vm.pop("Pop")
	case bytecode.OpLoad:
		vm.push(fr.Locals[vm.slot(fr, in.A)])
	case bytecode.OpStore:
		slot := vm.slot(fr, in.A)
		fr.Locals[slot] = vm.pop("Store")

	case bytecode.OpAdd:
		b, a := vm.popInt("Add"), vm.popInt("Add")
		vm.push(Int(a + b))
	case bytecode.OpSub:
		b, a := vm.popInt("Sub"), vm.popInt("Sub")
		vm.push(Int(a - b))
	case bytecode.OpNeg:
		vm.push(Int(-vm.popInt("Neg")))
	case bytecode.OpNot:
		vm.push(Bool(!vm.popBool("Not")))
	case bytecode.OpAnd:
		b, a := vm.popBool("And"), vm.popBool("And")
		vm.push(Bool(a && b))
	case bytecode.OpOr:
		b, a := vm.popBool("Or"), vm.popBool("Or")
		vm.push(Bool(a || b))
	case bytecode.OpEq, bytecode.OpNe:
		op := in.Op.String()
		b, a := vm.pop(op), vm.pop(op)
		if a.Kind != b.Kind || a.Kind == KindInvalid {
			panic(vm.eb.typeMismatch(op, a.Kind.String(), b))
		}
		vm.push(Bool((a.I == b.I) == (in.Op == bytecode.OpEq)))
	case bytecode.OpLt:
		b, a := vm.popInt("Lt"), vm.popInt("Lt")
		vm.push(Bool(a < b))
	case bytecode.OpLe:
		b, a := vm.popInt("Le"), vm.popInt("Le")
		vm.push(Bool(a <= b))
	case bytecode.OpGt:
		b, a := vm.popInt("Gt"), vm.popInt("Gt")
		vm.push(Bool(a > b))
	case bytecode.OpGe:
		b, a := vm.popInt("Ge"), vm.popInt("Ge")
		vm.push(Bool(a >= b))

	case bytecode.OpToInt:
		v := vm.pop("ToInt")
		switch v.Kind {
		case KindInt, KindBool:
			vm.push(Int(v.I))
		default:
			panic(vm.eb.typeMismatch("ToInt", "int or bool", v))
		}
	case bytecode.OpToBool:
		v := vm.pop("ToBool")
		switch v.Kind {
		case KindInt, KindBool:
			vm.push(Bool(v.I != 0))
		default:
			panic(vm.eb.typeMismatch("ToBool", "int or bool", v))
		}

	case bytecode.OpJmp:
		vm.jump(fr, in)
	case bytecode.OpJmpFalse:
		if !vm.popBool("JmpFalse") {
			vm.jump(fr, in)
		}

	case bytecode.OpCall:
		if in.A < 0 || in.A >= int64(len(vm.prog.Funcs)) {
			panic(vm.eb.invalidFunction("call target out of range"))
		}
		if err := vm.enter(int(in.A)); err != nil {
			panic(err)
		}
	case bytecode.OpCallExtern:
		vm.callExtern(in.A)
	case bytecode.OpRet:
		vm.leave(fr)
	case bytecode.OpHlt:
		vm.halted = true

	default:
		panic(vm.eb.makeError(InvalidOpcode, "invalid opcode "+in.Op.String()))
	}
}

// jump retargets fr relative to the instruction after the jump. A target
// equal to the code length is accepted here and fails on the next fetch.
func (vm *VM) jump(fr *Frame, in bytecode.Inst) {
	target := in.Target(vm.curIP)
	if target < 0 || target > len(fr.fn.Code) {
		panic(vm.eb.invalidJump(target, len(fr.fn.Code)))
	}
	fr.IP = target
}

func (vm *VM) callExtern(idx int64) {
	if idx < 0 || idx >= int64(len(vm.prog.Externs)) {
		panic(vm.eb.invalidFunction("extern index out of range"))
	}
	ext := &vm.prog.Externs[idx]
	host, ok := vm.externs[ext.Name]
	if !ok {
		panic(vm.eb.unknownExtern(ext.Name))
	}
	n := int(ext.NumParams)
	if vm.available() < n {
		panic(vm.eb.stackUnderflow("extern " + ext.Name))
	}
	args := append([]Value(nil), vm.stack[len(vm.stack)-n:]...)
	vm.stack = vm.stack[:len(vm.stack)-n]
	ret, err := host(vm, args)
	if err != nil {
		panic(vm.eb.makeError(ExternFailed, err.Error()))
	}
	if ext.ReturnsValue {
		vm.push(ret)
	}
}

func (vm *VM) slot(fr *Frame, a int64) int {
	if a < 0 || a >= int64(len(fr.Locals)) {
		panic(vm.eb.invalidSlot(a, len(fr.Locals)))
	}
	return int(a)
}

func (vm *VM) push(v Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop(op string) Value {
	if vm.available() <= 0 {
		panic(vm.eb.stackUnderflow(op))
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) popInt(op string) int64 {
	v := vm.pop(op)
	if v.Kind != KindInt {
		panic(vm.eb.typeMismatch(op, "int", v))
	}
	return v.I
}

func (vm *VM) popBool(op string) bool {
	v := vm.pop(op)
	if v.Kind != KindBool {
		panic(vm.eb.typeMismatch(op, "bool", v))
	}
	return v.AsBool()
}
