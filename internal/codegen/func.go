package codegen

import (
	"slices"

	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/hir"
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/symbols"
)

type scope struct {
	slots map[symbols.VarID]int
	base  int // first free slot when the scope was opened
}

type loopCtx struct {
	start  int
	breaks []int // indexes of unpatched break jumps
}

// funcGen holds the per-function state.
type funcGen struct {
	g    *generator
	fn   *hir.Func
	code []bytecode.Inst

	scopes   []scope
	next     int
	maxSlots int
	loops    []*loopCtx
}

func (fg *funcGen) errorf(kind ErrorKind, sp source.Span, msg string) *Error {
	return &Error{Kind: kind, Func: fg.fn.Name, Span: sp, Msg: msg}
}

func (fg *funcGen) emit(in bytecode.Inst) int {
	fg.code = append(fg.code, in)
	return len(fg.code) - 1
}

// jumpTo emits a jump from the next index to target.
func (fg *funcGen) jumpTo(op bytecode.Op, target int) {
	at := len(fg.code)
	fg.emit(bytecode.Jump(op, int64(target-(at+1))))
}

// insert places in at index at and keeps every emitted jump and pending
// break pointing at the same instruction. A jump whose target is exactly
// at is resolved by where the jump sits: forward jumps from before at land
// on the inserted instruction, backward jumps from after it skip it.
func (fg *funcGen) insert(at int, in bytecode.Inst) {
	for j := range fg.code {
		c := &fg.code[j]
		if !c.Op.IsJump() {
			continue
		}
		target := c.Target(j)
		nj, nt := j, target
		if j >= at {
			nj++
		}
		if target > at || (target == at && j >= at) {
			nt++
		}
		c.A = int64(nt - (nj + 1))
	}
	fg.code = slices.Insert(fg.code, at, in)
	for _, l := range fg.loops {
		for i, b := range l.breaks {
			if b >= at {
				l.breaks[i]++
			}
		}
	}
}

func (fg *funcGen) pushBound() {
	fg.scopes = append(fg.scopes, scope{slots: make(map[symbols.VarID]int), base: fg.next})
}

// popBound releases the innermost scope's slots for reuse by siblings.
func (fg *funcGen) popBound() {
	top := fg.scopes[len(fg.scopes)-1]
	fg.scopes = fg.scopes[:len(fg.scopes)-1]
	fg.next = top.base
}

func (fg *funcGen) bind(v symbols.VarID) int {
	slot := fg.next
	fg.next++
	fg.maxSlots = max(fg.maxSlots, fg.next)
	fg.scopes[len(fg.scopes)-1].slots[v] = slot
	return slot
}

func (fg *funcGen) slot(v symbols.VarID) (int, bool) {
	for i := len(fg.scopes) - 1; i >= 0; i-- {
		if s, ok := fg.scopes[i].slots[v]; ok {
			return s, true
		}
	}
	return 0, false
}
