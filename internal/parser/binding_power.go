package parser

// BindingPower orders infix operators; higher binds tighter.
type BindingPower uint8

const (
	BPZero BindingPower = iota
	BPLogicalOr
	BPLogicalAnd
	BPComparative
	BPAdditive
	BPCast
	BPUnary
	BPCall
	BPIndex
	BPPrimary
)

func (bp BindingPower) String() string {
	switch bp {
	case BPZero:
		return "zero"
	case BPLogicalOr:
		return "logical-or"
	case BPLogicalAnd:
		return "logical-and"
	case BPComparative:
		return "comparative"
	case BPAdditive:
		return "additive"
	case BPCast:
		return "cast"
	case BPUnary:
		return "unary"
	case BPCall:
		return "call"
	case BPIndex:
		return "index"
	case BPPrimary:
		return "primary"
	default:
		return "unknown"
	}
}
