package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rknit/whiskc/internal/buildpipeline"
	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/driver"
	"github.com/rknit/whiskc/internal/project"
	"github.com/rknit/whiskc/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <file.wsk|file.wc>",
	Short: "Compile (or load) a program and execute it",
	Long: `Run compiles a .wsk source in memory, or decodes a .wc artifact, and
executes it on the VM. The value left by main is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExecution,
}

func init() {
	addCompileFlags(runCmd)
	addRunFlags(runCmd)
	runCmd.Flags().Bool("vm-trace", false, "print every executed instruction to stderr")
}

func runExecution(cmd *cobra.Command, args []string) error {
	path := args[0]
	vmTrace, err := cmd.Flags().GetBool("vm-trace")
	if err != nil {
		return fmt.Errorf("failed to get vm-trace flag: %w", err)
	}
	cfg, err := resolveConfig(cmd, path)
	if err != nil {
		return err
	}

	prog, timings, err := loadProgram(cmd, path, cfg, "")
	if err != nil {
		return err
	}

	opts := vm.Options{
		MaxFrames: cfg.Run.MaxFrames,
		MaxSteps:  cfg.Run.MaxSteps,
		Stdout:    cmd.OutOrStdout(),
	}
	if vmTrace {
		opts.Tracer = vm.NewTracer(cmd.ErrOrStderr())
	}

	start := time.Now()
	state, err := vm.New(prog, opts).Run(cmd.Context())
	timings.Add(buildpipeline.StageRun, time.Since(start))
	if showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings"); showTimings {
		defer printStageTimings(cmd.ErrOrStderr(), timings, true)
	}

	var vmErr *vm.Error
	if errors.As(err, &vmErr) {
		fmt.Fprint(cmd.ErrOrStderr(), vmErr.Format())
		return errReported
	}
	if err != nil {
		return err
	}
	if v, ok := state.Result(); ok && !quiet(cmd) {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

// loadProgram decodes path when it is an artifact and compiles it otherwise.
// Diagnostics are printed before errReported is returned.
func loadProgram(cmd *cobra.Command, path string, cfg project.Config, stopAfter driver.Stage) (*bytecode.Program, buildpipeline.Timings, error) {
	var timings buildpipeline.Timings
	if isArtifactPath(path, cfg.Build.ArtifactExt) {
		start := time.Now()
		prog, err := driver.LoadProgram(path)
		timings.Add(buildpipeline.StageParse, time.Since(start))
		return prog, timings, err
	}

	res, err := driver.CompileFile(cmd.Context(), path, driver.Options{
		MaxDiagnostics: cfg.Build.MaxDiagnostics,
		Fold:           cfg.Build.Fold,
		StopAfter:      stopAfter,
		PhaseObserver: func(ev driver.PhaseEvent) {
			if ev.Status == driver.PhaseEnd {
				timings.Add(buildpipeline.StageFor(ev.Name), ev.Elapsed)
			}
		},
	})
	if res != nil {
		printDiagnostics(cmd, res.Bag, res.FileSet)
	}
	if errors.Is(err, driver.ErrDiagnostics) {
		return nil, timings, errReported
	}
	if err != nil {
		return nil, timings, err
	}
	return res.Program, timings, nil
}

func isArtifactPath(path, ext string) bool {
	if filepath.Ext(path) == "."+ext {
		return true
	}
	// #nosec G304 -- path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, 8)
	n, _ := f.Read(head)
	return driver.IsArtifact(head[:n])
}
