package ast

import "github.com/rknit/whiskc/internal/token"

// UnaryOp is a prefix operator.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota // -x
	UnaryNot                // !x
)

func (op UnaryOp) String() string {
	if op == UnaryNot {
		return "!"
	}
	return "-"
}

// BinaryOp is an infix operator.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinAnd
	BinOr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
)

var binaryOpText = [...]string{
	BinAdd: "+", BinSub: "-", BinAnd: "&&", BinOr: "||",
	BinEq: "==", BinNe: "!=", BinLt: "<", BinLe: "<=", BinGt: ">", BinGe: ">=",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsComparison reports whether op yields a bool from two operands of one kind.
func (op BinaryOp) IsComparison() bool {
	return op >= BinEq
}

// IsLogical reports whether op combines two bools.
func (op BinaryOp) IsLogical() bool {
	return op == BinAnd || op == BinOr
}

// BinaryOpFor maps an operator token to its BinaryOp.
func BinaryOpFor(k token.Kind) (BinaryOp, bool) {
	switch k {
	case token.Plus:
		return BinAdd, true
	case token.Minus:
		return BinSub, true
	case token.AndAnd:
		return BinAnd, true
	case token.OrOr:
		return BinOr, true
	case token.EqEq:
		return BinEq, true
	case token.BangEq:
		return BinNe, true
	case token.Lt:
		return BinLt, true
	case token.LtEq:
		return BinLe, true
	case token.Gt:
		return BinGt, true
	case token.GtEq:
		return BinGe, true
	}
	return 0, false
}
