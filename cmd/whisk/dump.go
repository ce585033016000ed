package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/driver"
	"github.com/rknit/whiskc/internal/hir"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <file.wsk|file.wc>",
	Short: "Print intermediate representations",
	Long: `Dump prints the requested views of a program in pipeline order.
Without a view flag the bytecode listing is printed. Artifacts only
support --bytecode.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().Bool("tokens", false, "print the token stream")
	dumpCmd.Flags().Bool("ast", false, "print the syntax tree")
	dumpCmd.Flags().Bool("hir", false, "print the resolved program")
	dumpCmd.Flags().Bool("bytecode", false, "print the bytecode listing")
	addCompileFlags(dumpCmd)
}

type dumpViews struct {
	tokens, ast, hir, bytecode bool
}

func (v dumpViews) stopAfter(fold bool) driver.Stage {
	switch {
	case v.bytecode:
		return driver.StageCodegen
	case v.hir && fold:
		return driver.StageFold
	case v.hir:
		return driver.StageResolve
	default:
		return driver.StageParse
	}
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	var views dumpViews
	for name, dst := range map[string]*bool{
		"tokens":   &views.tokens,
		"ast":      &views.ast,
		"hir":      &views.hir,
		"bytecode": &views.bytecode,
	} {
		v, err := cmd.Flags().GetBool(name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
	}
	if views == (dumpViews{}) {
		views.bytecode = true
	}

	cfg, err := resolveConfig(cmd, path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if isArtifactPath(path, cfg.Build.ArtifactExt) {
		if views.tokens || views.ast || views.hir {
			return fmt.Errorf("%s: artifacts only support --bytecode", path)
		}
		prog, _, err := loadProgram(cmd, path, cfg, "")
		if err != nil {
			return err
		}
		return bytecode.Disassemble(out, prog)
	}

	if views.tokens {
		toks, err := driver.Tokenize(path, cfg.Build.MaxDiagnostics)
		if err != nil {
			return err
		}
		printDiagnostics(cmd, toks.Bag, toks.FileSet)
		section(cmd, "tokens")
		if err := writeTokens(out, toks, "pretty"); err != nil {
			return err
		}
		if !views.ast && !views.hir && !views.bytecode {
			return nil
		}
	}

	res, err := driver.CompileFile(cmd.Context(), path, driver.Options{
		MaxDiagnostics: cfg.Build.MaxDiagnostics,
		Fold:           cfg.Build.Fold,
		StopAfter:      views.stopAfter(cfg.Build.Fold),
	})
	if res != nil && !views.tokens {
		printDiagnostics(cmd, res.Bag, res.FileSet)
	}
	if errors.Is(err, driver.ErrDiagnostics) {
		return errReported
	}
	if err != nil {
		return err
	}

	if views.ast {
		section(cmd, "ast")
		if err := ast.Dump(out, res.AST); err != nil {
			return err
		}
	}
	if views.hir {
		section(cmd, "hir")
		if err := hir.Dump(out, res.Module); err != nil {
			return err
		}
	}
	if views.bytecode {
		section(cmd, "bytecode")
		if err := bytecode.Disassemble(out, res.Program); err != nil {
			return err
		}
	}
	return nil
}

// section prints a header when more than one view is requested.
func section(cmd *cobra.Command, name string) {
	n := 0
	for _, f := range []string{"tokens", "ast", "hir", "bytecode"} {
		if v, _ := cmd.Flags().GetBool(f); v {
			n++
		}
	}
	if n > 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", name)
	}
}
