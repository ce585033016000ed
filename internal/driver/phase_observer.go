package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a compilation phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a pipeline phase boundary.
type PhaseEvent struct {
	Name    Stage
	Status  PhaseStatus
	Elapsed time.Duration
	Failed  bool
}

// PhaseObserver receives phase events emitted during compilation.
type PhaseObserver func(PhaseEvent)
