// Package main implements the whisk CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rknit/whiskc/internal/version"
)

const missingSourceMessage = "whisk: expected path to .wsk sourcefile."

// errReported marks failures whose details were already printed.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "whisk [flags] <file.wsk>",
	Short: "whisk compiler and bytecode VM",
	Long: `whisk compiles .wsk sources into portable bytecode artifacts (.wc)
and runs them on a stack-based virtual machine.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: startInstrumentation,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), missingSourceMessage)
			_ = cmd.Usage()
			return errReported
		}
		return compileFiles(cmd, args)
	},
}

// cleanups run once the command returns, whether or not it failed.
var cleanups []func(failed bool)

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	addPersistentFlags(rootCmd)
	addCompileFlags(rootCmd)

	err := rootCmd.Execute()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i](err != nil)
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "whisk: %v\n", err)
		}
		os.Exit(1)
	}
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().Bool("timings", false, "show timing information")
	cmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	cmd.PersistentFlags().String("ui", "auto", "progress view for compile (auto|on|off)")

	cmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	cmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	cmd.PersistentFlags().String("trace-mode", "ring", "trace storage (stream|ring|both)")
	cmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring buffer")
	cmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")

	cmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	cmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	cmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

func startInstrumentation(cmd *cobra.Command, _ []string) error {
	for _, setup := range []func(*cobra.Command) (func(bool), error){setupProfiling, setupTracing} {
		cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, cleanup)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}
