package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rknit/whiskc/internal/prof"
)

// setupProfiling starts the runtime profilers requested by flags.
func setupProfiling(cmd *cobra.Command) (func(failed bool), error) {
	root := cmd.Root()
	var opts prof.Options
	var err error
	if opts.CPU, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return func(bool) {}, nil
	}

	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func(bool) {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "whisk: profiling: %v\n", err)
		}
	}, nil
}
