package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	parse := tm.Begin("parse")
	tm.End(parse, "items=2")
	gen := tm.Begin("codegen")
	tm.End(gen, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(r.Phases))
	}
	if r.Phases[0].Name != "parse" || r.Phases[0].Note != "items=2" {
		t.Errorf("phase 0 = %+v", r.Phases[0])
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Errorf("total %.3f below phase %.3f", r.TotalMS, r.Phases[0].DurationMS)
	}
	s := tm.Summary()
	for _, want := range []string{"timings:", "parse", "// items=2", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("x")
	tm.End(idx, "")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Errorf("nil timer reported %d phases", len(r.Phases))
	}
}
