package diagfmt

// PathMode specifies how file URLs are displayed.
type PathMode uint8

const (
	// PathModeFull prints the URL as stored.
	PathModeFull PathMode = iota
	// PathModeBasename prints only the final path segment.
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	// Width caps the printed context line, 0 means unbounded.
	Width int
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	IncludeNotes     bool
	PathMode         PathMode
	// Max caps the number of emitted diagnostics, 0 means all.
	Max int
}
