package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jsir/internal/diag"
	"jsir/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	pathColor    = color.New(color.Bold)
	gutterColor  = color.New(color.FgBlue)
)

// Pretty renders diagnostics for humans, one block per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   12 | let x = y;
//	      |         ^~~
//
// Callers are expected to bag.Sort() beforehand for stable output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		paint(opts.Color, pathColor, location(d.Primary, fs, opts.PathMode)),
		paint(opts.Color, severityColor(d.Severity), d.Severity.String()),
		d.Code.String(),
		d.Message)

	if opts.ShowSource {
		writeSourceLine(w, d.Primary, fs, opts)
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  note: %s: %s\n", location(note.Span, fs, opts.PathMode), note.Msg)
			if opts.ShowSource {
				writeSourceLine(w, note.Span, fs, opts)
			}
		}
	}
}

// Short renders diagnostics one per line, without source context. Used for
// editor integrations that parse the output.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, pathMode PathMode) {
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			location(d.Primary, fs, pathMode),
			d.Severity.String(), d.Code.String(), d.Message)
	}
}

func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(span.File)
	if f == nil {
		return fmt.Sprintf("<unknown>:%d", span.Start)
	}
	path := f.Path
	if mode == PathModeBasename {
		path = filepath.Base(path)
	}
	pos := fs.Position(span.File, span.Start)
	return fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)
}

func writeSourceLine(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts) {
	pos := fs.Position(span.File, span.Start)
	line := fs.Line(span.File, pos.Line)
	if line == nil {
		return
	}

	text := strings.ReplaceAll(string(line), "\t", "    ")
	if opts.Width > 0 {
		text = runewidth.Truncate(text, opts.Width, "…")
	}

	gutter := fmt.Sprintf("%5d | ", pos.Line)
	fmt.Fprintf(w, "%s%s\n", paint(opts.Color, gutterColor, gutter), text)

	// The caret column accounts for display width, not byte offsets, so
	// tabs and wide runes keep the underline aligned.
	prefix := strings.ReplaceAll(string(line[:min(int(pos.Col)-1, len(line))]), "\t", "    ")
	pad := runewidth.StringWidth(prefix)
	if opts.Width > 0 && pad >= opts.Width {
		return
	}

	underline := underlineFor(span, line, pos)
	fmt.Fprintf(w, "%s%s%s\n",
		paint(opts.Color, gutterColor, "      | "),
		strings.Repeat(" ", pad),
		paint(opts.Color, errorColor, underline))
}

// underlineFor builds the ^~~~ marker, clamped to the rest of the line.
func underlineFor(span source.Span, line []byte, pos source.LineCol) string {
	length := int(span.Len())
	rest := len(line) - (int(pos.Col) - 1)
	if length > rest {
		length = rest
	}
	if length <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", length-1)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func paint(enabled bool, c *color.Color, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}
