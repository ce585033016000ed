package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rknit/whiskc/internal/driver"
	"github.com/rknit/whiskc/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.wsk>",
	Short: "Print the tokens of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	printDiagnostics(cmd, result.Bag, result.FileSet)
	return writeTokens(cmd.OutOrStdout(), result, format)
}

type tokenJSON struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

func writeTokens(w io.Writer, res *driver.TokenizeResult, format string) error {
	switch format {
	case "pretty":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, tok := range res.Tokens {
			pos, _ := res.FileSet.Resolve(tok.Span)
			fmt.Fprintf(tw, "%d:%d\t%s\t%s\n", pos.Line, pos.Col, tok.Kind, tokenText(tok))
		}
		return tw.Flush()
	case "json":
		out := make([]tokenJSON, 0, len(res.Tokens))
		for _, tok := range res.Tokens {
			pos, _ := res.FileSet.Resolve(tok.Span)
			out = append(out, tokenJSON{
				Kind:  tok.Kind.String(),
				Text:  tokenText(tok),
				Line:  pos.Line,
				Col:   pos.Col,
				Start: tok.Span.Start,
				End:   tok.Span.End,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func tokenText(tok token.Token) string {
	if tok.IsIdent() || tok.Kind == token.IntLit {
		return tok.Text
	}
	return ""
}
