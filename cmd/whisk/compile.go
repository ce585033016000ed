package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rknit/whiskc/internal/buildpipeline"
	"github.com/rknit/whiskc/internal/driver"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <file.wsk>...",
	Short: "Compile sources into bytecode artifacts",
	Long: `Compile each source into <name>.wc next to it. Files are independent
units and are compiled in parallel.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), missingSourceMessage)
			_ = cmd.Usage()
			return errReported
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return compileFiles(cmd, args)
	},
}

func init() {
	addCompileFlags(compileCmd)
}

func compileFiles(cmd *cobra.Command, files []string) error {
	cfg, err := resolveConfig(cmd, files[0])
	if err != nil {
		return err
	}
	uiValue, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	req := buildpipeline.Request{
		Files: files,
		Options: driver.Options{
			MaxDiagnostics: cfg.Build.MaxDiagnostics,
			Fold:           cfg.Build.Fold,
			Codec:          cfg.Build.Codec,
			EnableTimings:  showTimings,
		},
		ArtifactExt: cfg.Build.ArtifactExt,
		Jobs:        cfg.Build.Jobs,
	}

	var units []buildpipeline.UnitResult
	if shouldUseTUI(mode) && !quiet(cmd) {
		units, err = runBuildWithUI(cmd.Context(), "whisk compile", files, &req)
	} else {
		units, err = buildpipeline.Build(cmd.Context(), &req)
	}

	out := cmd.OutOrStdout()
	for _, u := range units {
		if u.Result != nil {
			printDiagnostics(cmd, u.Result.Bag, u.Result.FileSet)
		}
		switch {
		case u.Err == nil:
			if !quiet(cmd) {
				fmt.Fprintf(out, "wrote binary to %s\n", u.Result.Artifact)
			}
		case errors.Is(u.Err, driver.ErrDiagnostics):
			fmt.Fprintf(cmd.ErrOrStderr(), "whisk: %s: compilation failed\n", u.Path)
		default:
			fmt.Fprintf(cmd.ErrOrStderr(), "whisk: %s: %v\n", u.Path, u.Err)
		}
		if showTimings {
			if len(units) > 1 {
				fmt.Fprintf(out, "%s:\n", u.Path)
			}
			printStageTimings(out, u.Timings, false)
		}
	}
	if errors.Is(err, buildpipeline.ErrUnitsFailed) {
		return errReported
	}
	return err
}
