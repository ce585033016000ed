package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/diagfmt"
	"github.com/rknit/whiskc/internal/source"
)

func useColor(cmd *cobra.Command, w io.Writer) bool {
	switch v, _ := cmd.Root().PersistentFlags().GetString("color"); v {
	case "on":
		return true
	case "off":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && isTerminal(f)
	}
}

// printDiagnostics renders bag to stderr. It reports whether anything was printed.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fset *source.FileSet) bool {
	if bag == nil || fset == nil || bag.Len() == 0 {
		return false
	}
	w := cmd.ErrOrStderr()
	diagfmt.Pretty(w, bag, fset, diagfmt.PrettyOpts{
		Color:     useColor(cmd, w),
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	})
	return true
}
