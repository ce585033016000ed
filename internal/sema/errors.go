package sema

import (
	"fmt"

	"github.com/rknit/whiskc/internal/diag"
)

// Errors aggregates every diagnostic of a failed resolution.
type Errors struct {
	Diagnostics []diag.Diagnostic
}

func (e *Errors) Error() string {
	switch len(e.Diagnostics) {
	case 0:
		return "resolution failed"
	case 1:
		return e.Diagnostics[0].Message
	default:
		return fmt.Sprintf("%s (and %d more errors)", e.Diagnostics[0].Message, len(e.Diagnostics)-1)
	}
}

// Report forwards the collected diagnostics to r.
func (e *Errors) Report(r diag.Reporter) {
	for _, d := range e.Diagnostics {
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}
