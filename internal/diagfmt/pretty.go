package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, loc       *color.Color
	gutter, caret   *color.Color
	note            *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		loc:    color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.loc, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes the diagnostics of bag in human readable form.
// Callers are expected to have sorted the bag.
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   3 | let x = ;
//	     |         ^
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDiagnostic(w, p, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, p palette, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.loc.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)
	if f != nil {
		writeSnippet(w, p, f, start, end, int(opts.Context))
	}
	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
			p.note.Sprint("note:"),
			formatPath(nf, opts.PathMode, opts.BaseDir), ns.Line, ns.Col, n.Msg)
	}
}

func writeSnippet(w io.Writer, p palette, f *source.File, start, end source.LineCol, context int) {
	if start.Line == 0 {
		return
	}
	context = max(context, 0)
	first := int(start.Line) - context
	first = max(first, 1)
	last := int(start.Line) + context
	lastLine := len(f.LineIdx) + 1
	last = min(last, lastLine)

	width := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := f.Line(uint32(ln)) //nolint:gosec // bounded by the line index
		if ln != int(start.Line) && strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), text)
		if ln != int(start.Line) {
			continue
		}
		fmt.Fprintf(w, "%s %s\n",
			p.gutter.Sprintf("%*s |", width, ""),
			p.caret.Sprint(underline(text, start, end)))
	}
}

// underline builds the caret line for the primary span, aligned by display width.
func underline(text string, start, end source.LineCol) string {
	col := int(start.Col) - 1
	col = min(max(col, 0), len(text))
	prefix := text[:col]

	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	stop := len(text)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(text))
	}
	n := 1
	if stop > col {
		n = max(runewidth.StringWidth(text[col:stop]), 1)
	}
	b.WriteByte('^')
	b.WriteString(strings.Repeat("~", n-1))
	return b.String()
}
