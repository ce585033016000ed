package trace

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

// Progress holds the counters a heartbeat samples: compilation units
// finished out of the requested total, and VM instructions executed by the
// current run. All methods are safe on nil.
type Progress struct {
	unitsTotal atomic.Int64
	unitsDone  atomic.Int64
	unitsFail  atomic.Int64
	steps      atomic.Uint64
}

// AddUnits raises the expected unit total by n.
func (p *Progress) AddUnits(n int) {
	if p != nil {
		p.unitsTotal.Add(int64(n))
	}
}

// UnitDone records one finished unit.
func (p *Progress) UnitDone(failed bool) {
	if p == nil {
		return
	}
	p.unitsDone.Add(1)
	if failed {
		p.unitsFail.Add(1)
	}
}

// SetSteps publishes the instruction count of the running VM.
func (p *Progress) SetSteps(n uint64) {
	if p != nil {
		p.steps.Store(n)
	}
}

func (p *Progress) Steps() uint64 {
	if p == nil {
		return 0
	}
	return p.steps.Load()
}

// Summary renders the non-zero counters, e.g. "units=2/5 failed=1 steps=4096".
func (p *Progress) Summary() string {
	if p == nil {
		return ""
	}
	var parts []string
	if total := p.unitsTotal.Load(); total > 0 {
		parts = append(parts, fmt.Sprintf("units=%d/%d", p.unitsDone.Load(), total))
		if failed := p.unitsFail.Load(); failed > 0 {
			parts = append(parts, fmt.Sprintf("failed=%d", failed))
		}
	}
	if steps := p.steps.Load(); steps > 0 {
		parts = append(parts, fmt.Sprintf("steps=%d", steps))
	}
	return strings.Join(parts, " ")
}

type progressCtxKey struct{}

// WithProgress attaches p to ctx.
func WithProgress(ctx context.Context, p *Progress) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, progressCtxKey{}, p)
}

// ProgressFrom returns the Progress stored in ctx, or nil.
func ProgressFrom(ctx context.Context) *Progress {
	if ctx == nil {
		return nil
	}
	p, _ := ctx.Value(progressCtxKey{}).(*Progress)
	return p
}
