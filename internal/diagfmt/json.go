package diagfmt

import (
	"encoding/json"
	"io"
	"path"

	"quill/internal/diag"
	"quill/internal/source"
)

type jsonPosition struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type jsonSpan struct {
	URL      string        `json:"url"`
	Start    uint32        `json:"start"`
	End      uint32        `json:"end"`
	Position *jsonPosition `json:"position,omitempty"`
}

type jsonNote struct {
	Span jsonSpan `json:"span"`
	Msg  string   `json:"msg"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	Span     jsonSpan   `json:"span"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

// JSON writes the bag as a JSON array, one object per diagnostic.
func JSON(w io.Writer, bag *diag.Bag, texts TextProvider, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	out := make([]jsonDiagnostic, 0, len(items))
	for _, d := range items {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
			Span:     jsonSpanOf(d.Primary, texts, opts),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				jd.Notes = append(jd.Notes, jsonNote{
					Span: jsonSpanOf(n.Span, texts, opts),
					Msg:  n.Msg,
				})
			}
		}
		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func jsonSpanOf(sp source.Span, texts TextProvider, opts JSONOpts) jsonSpan {
	url := sp.URL
	if opts.PathMode == PathModeBasename {
		url = path.Base(url)
	}
	js := jsonSpan{URL: url, Start: sp.Range.Start, End: sp.Range.End}
	if opts.IncludePositions && texts != nil {
		if text, ok := texts(sp.URL); ok {
			line, col := source.NewLineIndex(text).Position(sp.Range.Start)
			js.Position = &jsonPosition{Line: line, Col: col}
		}
	}
	return js
}
