package hir

// StaticURLScheme is the URL scheme of modules merged into the static
// namespace: quill-static://math is visible in every script as `math`.
const StaticURLScheme = "quill-static"

// VirtualSourceURL is the synthetic definition source owned by the graph
// itself; static-module registrations live there.
const VirtualSourceURL = "quill-virtual:///"

// ModuleKindTag discriminates module kinds.
type ModuleKindTag uint8

const (
	// ModuleStatic is the root namespace every script can see. There is
	// exactly one per graph.
	ModuleStatic ModuleKindTag = iota
	// ModuleURL is a module identified by a canonical URL.
	ModuleURL
)

// ModuleKind is the identity of a module: the static module, or a URL.
type ModuleKind struct {
	Tag ModuleKindTag
	URL string
}

func StaticModuleKind() ModuleKind { return ModuleKind{Tag: ModuleStatic} }

func URLModuleKind(url string) ModuleKind { return ModuleKind{Tag: ModuleURL, URL: url} }

func (k ModuleKind) String() string {
	if k.Tag == ModuleStatic {
		return "static"
	}
	return k.URL
}

// ModuleData is one module: a scope plus the sources that contribute to
// it. Protected modules survive losing their last source.
type ModuleData struct {
	Scope     Scope
	Kind      ModuleKind
	Docs      string
	Protected bool
	Sources   []Source // ordered set
}

// URL returns the module's URL, or "" for the static module.
func (m *ModuleData) URL() string {
	return m.Kind.URL
}

func (m *ModuleData) addSource(src Source) {
	for _, s := range m.Sources {
		if s == src {
			return
		}
	}
	m.Sources = append(m.Sources, src)
}

func (m *ModuleData) removeSource(src Source) {
	for i, s := range m.Sources {
		if s == src {
			m.Sources = append(m.Sources[:i], m.Sources[i+1:]...)
			return
		}
	}
}
