package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rknit/whiskc/internal/driver"
	"github.com/rknit/whiskc/internal/project"
	"github.com/rknit/whiskc/internal/trace"
)

// Request configures a build of one or more independent units.
type Request struct {
	Files []string
	// Options is the template for every unit; Output is derived per file.
	Options driver.Options
	// ArtifactExt enables writing <name>.<ext> next to each source.
	ArtifactExt string
	Jobs        int // 0 means GOMAXPROCS
	Progress    ProgressSink
}

// UnitResult is the outcome of one file.
type UnitResult struct {
	Path    string
	Result  *driver.Result
	Err     error
	Timings Timings
	Elapsed time.Duration
}

// ErrUnitsFailed is returned by Build when at least one unit failed.
var ErrUnitsFailed = errors.New("build failed")

// Build compiles every file of req concurrently. A failing unit does not
// stop the others; results keep the order of req.Files.
func Build(ctx context.Context, req *Request) ([]UnitResult, error) {
	if req == nil || len(req.Files) == 0 {
		return nil, fmt.Errorf("missing source files")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	emitQueued(req.Progress, req.Files)
	counters := trace.ProgressFrom(ctx)
	counters.AddUnits(len(req.Files))
	results := make([]UnitResult, len(req.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Files)))
	for i, path := range req.Files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = buildUnit(gctx, req, path)
			counters.UnitDone(results[i].Err != nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d units", ErrUnitsFailed, failed, len(results))
	}
	return results, nil
}

func buildUnit(ctx context.Context, req *Request, path string) UnitResult {
	unit := UnitResult{Path: path}
	opts := req.Options
	if req.ArtifactExt != "" {
		opts.Output = project.ArtifactPath(path, req.ArtifactExt)
	}
	userObserver := opts.PhaseObserver
	opts.PhaseObserver = func(ev driver.PhaseEvent) {
		stage := StageFor(ev.Name)
		switch {
		case ev.Status == driver.PhaseStart:
			emit(req.Progress, Event{File: path, Stage: stage, Status: StatusWorking})
		case ev.Failed:
			unit.Timings.Add(stage, ev.Elapsed)
			emit(req.Progress, Event{File: path, Stage: stage, Status: StatusError, Elapsed: ev.Elapsed})
		default:
			unit.Timings.Add(stage, ev.Elapsed)
		}
		if userObserver != nil {
			userObserver(ev)
		}
	}

	start := time.Now()
	unit.Result, unit.Err = driver.CompileFile(ctx, path, opts)
	unit.Elapsed = time.Since(start)

	status := StatusDone
	if unit.Err != nil {
		status = StatusError
	}
	emit(req.Progress, Event{File: path, Stage: StageCodegen, Status: status, Err: unit.Err, Elapsed: unit.Elapsed})
	return unit
}

// StageFor maps a driver phase to the progress stage it belongs to.
func StageFor(s driver.Stage) Stage {
	switch s {
	case driver.StageLoad, driver.StageParse:
		return StageParse
	case driver.StageResolve:
		return StageResolve
	case driver.StageFold:
		return StageFold
	case driver.StageWrite:
		return StageWrite
	default:
		return StageCodegen
	}
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

func emitQueued(sink ProgressSink, files []string) {
	for _, file := range files {
		emit(sink, Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}
