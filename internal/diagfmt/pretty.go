package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"svlower/internal/diag"
	"svlower/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, loc       *color.Color
	caret, note     *color.Color
	gutter          *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		loc:    color.New(color.Faint),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.loc, p.caret, p.note, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строки контекста и подчёркивание ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		loc := location(fs, d.Primary, opts.PathMode)
		sev := pal.severity(d.Severity)
		if loc != "" {
			fmt.Fprintf(w, "%s: ", pal.loc.Sprint(loc))
		}
		fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity.String()), pal.code.Sprint(d.Code.ID()), d.Message)
		printExcerpt(w, fs, d.Primary, int(opts.Context), pal)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			prefix := pal.note.Sprint("note")
			if nloc := location(fs, n.Span, opts.PathMode); nloc != "" {
				prefix += ": " + nloc
			}
			if n.Msg != "" {
				fmt.Fprintf(w, "  %s: %s\n", prefix, n.Msg)
			} else {
				fmt.Fprintf(w, "  %s\n", prefix)
			}
			if n.Span != d.Primary {
				printExcerpt(w, fs, n.Span, 0, pal)
			}
		}
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	if fs == nil {
		return ""
	}
	f, ok := fs.Lookup(sp.File)
	if !ok {
		return ""
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col)
}

// printExcerpt prints the first line of sp with context lines above it
// and a caret underline below.
func printExcerpt(w io.Writer, fs *source.FileSet, sp source.Span, context int, pal palette) {
	if fs == nil {
		return
	}
	f, ok := fs.Lookup(sp.File)
	if !ok {
		return
	}
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	first := start.Line
	if ctx, err := safecast.Conv[uint32](max(context, 0)); err == nil && ctx < first {
		first -= ctx
	} else {
		first = 1
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), expandTabs(f.GetLine(ln)))
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	col = min(max(col, 0), len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	width := max(runewidth.StringWidth(expandTabs(line[col:stop])), 1)
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(underline))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
