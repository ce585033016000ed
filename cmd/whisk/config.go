package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/project"
)

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-fold", false, "skip constant folding")
	cmd.Flags().String("codec", "", "artifact codec (msgpack|cbor)")
	cmd.Flags().Int("jobs", 0, "files compiled in parallel")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-frames", 0, "call stack limit")
	cmd.Flags().Uint64("max-steps", 0, "instruction budget (0 is unlimited)")
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// resolveConfig layers flags over whisk.toml (searched upward from the
// directory of src) over the defaults.
func resolveConfig(cmd *cobra.Command, src string) (project.Config, error) {
	cfg := project.Default()

	dir := filepath.Dir(src)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	manifest, ok, err := project.LoadManifest(dir)
	if err != nil {
		return cfg, err
	}
	if ok {
		cfg = manifest.Config
	}

	flags := cmd.Flags()
	if flagChanged(cmd, "max-diagnostics") {
		if cfg.Build.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return cfg, err
		}
	}
	if flagChanged(cmd, "no-fold") {
		noFold, err := flags.GetBool("no-fold")
		if err != nil {
			return cfg, err
		}
		cfg.Build.Fold = !noFold
	}
	if flagChanged(cmd, "codec") {
		name, err := flags.GetString("codec")
		if err != nil {
			return cfg, err
		}
		if cfg.Build.Codec, err = bytecode.ParseCodec(name); err != nil {
			return cfg, fmt.Errorf("--codec: %w", err)
		}
	}
	if flagChanged(cmd, "jobs") {
		if cfg.Build.Jobs, err = flags.GetInt("jobs"); err != nil {
			return cfg, err
		}
	}
	if flagChanged(cmd, "max-frames") {
		if cfg.Run.MaxFrames, err = flags.GetInt("max-frames"); err != nil {
			return cfg, err
		}
		if cfg.Run.MaxFrames < 1 {
			return cfg, fmt.Errorf("--max-frames must be at least 1")
		}
	}
	if flagChanged(cmd, "max-steps") {
		if cfg.Run.MaxSteps, err = flags.GetUint64("max-steps"); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
