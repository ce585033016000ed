package driver

import (
	"errors"

	"github.com/rknit/whiskc/internal/bytecode"
)

// Stage names a pipeline phase.
type Stage string

const (
	StageLoad    Stage = "load"
	StageParse   Stage = "parse"
	StageResolve Stage = "resolve"
	StageFold    Stage = "fold"
	StageCodegen Stage = "codegen"
	StageWrite   Stage = "write"
)

var (
	// ErrMissingSourceFile is returned when the source path does not exist.
	ErrMissingSourceFile = errors.New("missing source file")
	// ErrDiagnostics is returned when parsing or resolution reported errors;
	// the diagnostics are in Result.Bag.
	ErrDiagnostics = errors.New("diagnostics reported errors")
)

// Options configures one compilation.
type Options struct {
	MaxDiagnostics int
	Fold           bool
	// StopAfter ends the pipeline after the named stage; empty runs codegen.
	StopAfter Stage
	// Output, when set, is the artifact path written after codegen succeeds.
	Output        string
	Codec         bytecode.Codec
	EnableTimings bool
	PhaseObserver PhaseObserver
}
