// Package diagfmt renders diagnostic bags for humans and for tooling.
// Offset-to-position mapping happens here, not in the graph.
package diagfmt

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"quill/internal/diag"
	"quill/internal/source"
)

// TextProvider returns the text of a loaded source by URL. Context lines
// are skipped for URLs the provider does not know.
type TextProvider func(url string) (string, bool)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	markerColor  = color.New(color.FgRed, color.Bold)
	gutterColor  = color.New(color.FgHiBlack)
)

// Pretty writes every diagnostic in the bag, in bag order (callers sort
// first). Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the offending line with a ^~~~ marker, then its notes.
func Pretty(w io.Writer, bag *diag.Bag, texts TextProvider, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, texts, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, texts TextProvider, opts PrettyOpts) {
	head := fmt.Sprintf("%s %s", severityLabel(d.Severity, opts.Color), d.Code)
	fmt.Fprintf(w, "%s: %s: %s\n", location(d.Primary, texts, opts.PathMode), head, d.Message)
	printContext(w, d.Primary, texts, opts)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		label := "note"
		if opts.Color {
			label = noteColor.Sprint(label)
		}
		fmt.Fprintf(w, "  %s: %s: %s\n", location(n.Span, texts, opts.PathMode), label, n.Msg)
	}
}

func severityLabel(sev diag.Severity, colored bool) string {
	if !colored {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(sev.String())
	case diag.SevWarning:
		return warningColor.Sprint(sev.String())
	default:
		return infoColor.Sprint(sev.String())
	}
}

// location renders "<path>:<line>:<col>"; without text to index it falls
// back to byte offsets as "<path>:@<start>".
func location(sp source.Span, texts TextProvider, mode PathMode) string {
	p := sp.URL
	if mode == PathModeBasename {
		p = path.Base(p)
	}
	if texts != nil {
		if text, ok := texts(sp.URL); ok {
			line, col := source.NewLineIndex(text).Position(sp.Range.Start)
			return fmt.Sprintf("%s:%d:%d", p, line, col)
		}
	}
	return fmt.Sprintf("%s:@%d", p, sp.Range.Start)
}

// printContext prints the first line the span covers with a caret marker
// underneath.
func printContext(w io.Writer, sp source.Span, texts TextProvider, opts PrettyOpts) {
	if texts == nil {
		return
	}
	text, ok := texts(sp.URL)
	if !ok || int(sp.Range.Start) > len(text) {
		return
	}

	lineStart := strings.LastIndexByte(text[:sp.Range.Start], '\n') + 1
	lineEnd := strings.IndexByte(text[lineStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text)
	} else {
		lineEnd += lineStart
	}
	line := strings.TrimRight(text[lineStart:lineEnd], "\r")

	if opts.Width > 0 && runewidth.StringWidth(line) > opts.Width {
		line = runewidth.Truncate(line, opts.Width, "…")
	}

	prefix := line[:min(int(sp.Range.Start)-lineStart, len(line))]
	span := int(sp.Range.End - sp.Range.Start)
	if span < 1 {
		span = 1
	}
	if rest := len(line) - len(prefix); span > rest && rest > 0 {
		span = rest
	}

	marker := "^" + strings.Repeat("~", span-1)
	if opts.Color {
		marker = markerColor.Sprint(marker)
	}
	gutter := "  | "
	if opts.Color {
		gutter = gutterColor.Sprint(gutter)
	}

	fmt.Fprintf(w, "%s%s\n", gutter, line)
	// Pad with the display width of the prefix so the caret lines up with
	// wide runes too.
	fmt.Fprintf(w, "%s%s%s\n", gutter, strings.Repeat(" ", runewidth.StringWidth(prefix)), marker)
}
