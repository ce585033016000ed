package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"fortio.org/safecast"

	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/codegen"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/hir"
	"github.com/rknit/whiskc/internal/lexer"
	"github.com/rknit/whiskc/internal/observ"
	"github.com/rknit/whiskc/internal/parser"
	"github.com/rknit/whiskc/internal/sema"
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/symbols"
	"github.com/rknit/whiskc/internal/trace"
)

// Result carries every artifact the pipeline produced before it stopped.
type Result struct {
	FileSet  *source.FileSet
	File     *source.File
	Bag      *diag.Bag
	AST      *ast.File
	Module   *hir.Module
	Symbols  *symbols.Table
	Program  *bytecode.Program
	Artifact string // path written, if any
	Timings  observ.Report
}

// CompileFile loads path and compiles it.
func CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fset := source.NewFileSet()
	p := newPipeline(ctx, fset, path, opts)
	defer p.finish()

	ph := p.begin(StageLoad)
	id, err := fset.Load(path)
	p.end(ph, "", err != nil)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSourceFile, path)
		}
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p.run(fset.Get(id))
}

// CompileSource compiles src as a virtual file called name.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	fset := source.NewFileSet()
	p := newPipeline(ctx, fset, name, opts)
	defer p.finish()
	return p.run(fset.Get(fset.AddVirtual(name, src)))
}

type pipeline struct {
	ctx   context.Context
	opts  Options
	res   *Result
	timer *observ.Timer
	unit  *trace.Span
}

func newPipeline(ctx context.Context, fset *source.FileSet, name string, opts Options) *pipeline {
	if ctx == nil {
		ctx = context.Background()
	}
	p := &pipeline{
		opts: opts,
		res: &Result{
			FileSet: fset,
			Bag:     diag.NewBag(opts.MaxDiagnostics),
		},
	}
	if opts.EnableTimings {
		p.timer = observ.NewTimer()
	}
	p.ctx, p.unit = trace.BeginCtx(ctx, trace.ScopeDriver, "compile:"+name)
	return p
}

func (p *pipeline) finish() {
	p.res.Timings = p.timer.Report()
	p.unit.WithExtra("diagnostics", fmt.Sprint(p.res.Bag.Len())).End("")
}

type phase struct {
	stage Stage
	idx   int
	start time.Time
}

func (p *pipeline) begin(stage Stage) phase {
	if p.opts.PhaseObserver != nil {
		p.opts.PhaseObserver(PhaseEvent{Name: stage, Status: PhaseStart})
	}
	return phase{stage: stage, idx: p.timer.Begin(string(stage)), start: time.Now()}
}

func (p *pipeline) end(ph phase, note string, failed bool) {
	p.timer.End(ph.idx, note)
	if p.opts.PhaseObserver != nil {
		p.opts.PhaseObserver(PhaseEvent{
			Name:    ph.stage,
			Status:  PhaseEnd,
			Elapsed: time.Since(ph.start),
			Failed:  failed,
		})
	}
}

// stage runs fn inside a pass span, a timer phase and observer events.
func (p *pipeline) stage(stage Stage, fn func() (note string, err error)) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	_, span := trace.BeginCtx(p.ctx, trace.ScopePass, string(stage))
	ph := p.begin(stage)
	note, err := fn()
	p.end(ph, note, err != nil)
	detail := note
	if err != nil {
		detail = "error"
	}
	span.End(detail)
	return err
}

func (p *pipeline) stopAfter(stage Stage) bool {
	return p.opts.StopAfter == stage
}

func (p *pipeline) run(file *source.File) (*Result, error) {
	res := p.res
	res.File = file
	reporter := diag.BagReporter{Bag: res.Bag}

	err := p.stage(StageParse, func() (string, error) {
		maxErrors, err := safecast.Conv[uint](max(p.opts.MaxDiagnostics, 0))
		if err != nil {
			return "", err
		}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		parsed := parser.ParseFile(lx, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
		res.AST = parsed.File
		if res.Bag.HasErrors() {
			return "", ErrDiagnostics
		}
		return fmt.Sprintf("items=%d", len(parsed.File.Items)), nil
	})
	if err != nil || p.stopAfter(StageParse) {
		return p.done(err)
	}

	err = p.stage(StageResolve, func() (string, error) {
		r, err := sema.Resolve(res.AST, sema.Options{
			ModuleName:     file.Path,
			MaxDiagnostics: p.opts.MaxDiagnostics,
		})
		if err != nil {
			var semaErrs *sema.Errors
			if errors.As(err, &semaErrs) {
				semaErrs.Report(reporter)
				return "", ErrDiagnostics
			}
			return "", fmt.Errorf("resolve: %w", err)
		}
		res.Module, res.Symbols = r.Module, r.Symbols
		return fmt.Sprintf("funcs=%d vars=%d", r.Symbols.Funcs.Len(), r.Symbols.Vars.Len()), nil
	})
	if err != nil || p.stopAfter(StageResolve) {
		return p.done(err)
	}

	if p.opts.Fold {
		err = p.stage(StageFold, func() (string, error) {
			hir.FoldModule(res.Module)
			return "", nil
		})
		if err != nil || p.stopAfter(StageFold) {
			return p.done(err)
		}
	}

	err = p.stage(StageCodegen, func() (string, error) {
		prog, err := codegen.Generate(res.Module, res.Symbols)
		if err != nil {
			return "", fmt.Errorf("codegen: %w", err)
		}
		res.Program = prog
		p.traceFuncs(prog)
		return fmt.Sprintf("funcs=%d", len(prog.Funcs)), nil
	})
	if err != nil || p.stopAfter(StageCodegen) || p.opts.Output == "" {
		return p.done(err)
	}

	err = p.stage(StageWrite, func() (string, error) {
		n, err := WriteArtifact(p.opts.Output, res.Program, p.opts.Codec)
		if err != nil {
			return "", err
		}
		res.Artifact = p.opts.Output
		return fmt.Sprintf("bytes=%d", n), nil
	})
	return p.done(err)
}

func (p *pipeline) done(err error) (*Result, error) {
	p.res.Bag.Sort()
	return p.res, err
}

func (p *pipeline) traceFuncs(prog *bytecode.Program) {
	tr := trace.FromContext(p.ctx)
	if !trace.Wants(tr, trace.ScopeFunc) {
		return
	}
	for i := range prog.Funcs {
		f := &prog.Funcs[i]
		trace.Point(tr, trace.ScopeFunc, "func:"+f.Name,
			fmt.Sprintf("insts=%d locals=%d", len(f.Code), f.NumLocals), trace.SpanID(p.ctx))
	}
}
