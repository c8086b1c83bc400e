package router

import "sort"

// EntryKind distinguishes what a matched route entry represents.
type EntryKind int

const (
	// KindPage is an ordinary page route.
	KindPage EntryKind = iota

	// KindRedirect is a route whose only effect is a redirect to RedirectTo.
	KindRedirect
)

// String returns the kind name for diagnostics.
func (k EntryKind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// RouteEntry is one registered route: a pattern plus the opaque payload
// handed back to the caller on a match. The matching core never invokes
// anything on the payload fields; it only carries them.
type RouteEntry struct {
	// Pattern is the parsed pattern. Populated from Path at build time
	// when nil.
	Pattern Pattern

	// Path is the original pattern string (e.g. "/projects/:id").
	Path string

	// Kind distinguishes pages from redirects.
	Kind EntryKind

	// Module identifies the handler module for this route.
	Module string

	// RedirectTo is the target path for KindRedirect entries.
	RedirectTo string

	// Parent is an optional back-reference to the enclosing route's
	// pattern string (e.g. a layout or section root).
	Parent string

	// Companions lists optional companion module references (e.g. a
	// head module or client bundle) discovered alongside the route.
	Companions []string
}

// ErrorBoundaryEntry associates an error handler module with a path
// prefix. The deepest boundary enclosing a path wins.
type ErrorBoundaryEntry struct {
	// Pattern is the parsed pattern. Populated from Path at build time
	// when nil.
	Pattern Pattern

	// Path is the original pattern string.
	Path string

	// Module identifies the boundary's handler module.
	Module string
}

// Manifest is the declarative route set a Router is built from.
// Insertion order matters: on ambiguity the first registered route wins.
// A manifest is assembled once, then treated as read-only; the trie is a
// derived, disposable view rebuilt whenever the manifest changes.
type Manifest struct {
	// Routes in registration (priority) order.
	Routes []*RouteEntry

	// Boundaries in registration order.
	Boundaries []*ErrorBoundaryEntry

	// StatusRoutes maps an HTTP status code to the entry rendered for it.
	StatusRoutes map[int]*RouteEntry

	// RootError is the optional top-level error handler, used when no
	// deeper boundary encloses a failing path.
	RootError *ErrorBoundaryEntry
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		StatusRoutes: make(map[int]*RouteEntry),
	}
}

// AddPage registers a page route.
func (m *Manifest) AddPage(pattern, module string) error {
	return m.AddRoute(&RouteEntry{Path: pattern, Kind: KindPage, Module: module})
}

// AddRedirect registers a redirect route.
func (m *Manifest) AddRedirect(pattern, target string) error {
	return m.AddRoute(&RouteEntry{Path: pattern, Kind: KindRedirect, RedirectTo: target})
}

// AddRoute registers a fully populated entry, parsing its pattern if needed.
func (m *Manifest) AddRoute(entry *RouteEntry) error {
	if entry.Pattern == nil {
		p, err := ParsePattern(entry.Path)
		if err != nil {
			return err
		}
		entry.Pattern = p
	}
	m.Routes = append(m.Routes, entry)
	return nil
}

// AddBoundary registers an error boundary for a path prefix.
func (m *Manifest) AddBoundary(pattern, module string) error {
	p, err := ParsePattern(pattern)
	if err != nil {
		return err
	}
	m.Boundaries = append(m.Boundaries, &ErrorBoundaryEntry{Pattern: p, Path: pattern, Module: module})
	return nil
}

// SetStatusRoute maps a status code to the entry rendered for it.
func (m *Manifest) SetStatusRoute(code int, entry *RouteEntry) {
	if m.StatusRoutes == nil {
		m.StatusRoutes = make(map[int]*RouteEntry)
	}
	m.StatusRoutes[code] = entry
}

// SetRootError sets the optional root error handler.
func (m *Manifest) SetRootError(module string) {
	m.RootError = &ErrorBoundaryEntry{Path: "/", Module: module}
}

// CompareSpecificity orders two patterns by matching priority. It returns
// a negative value when a should be tried before b, positive for the
// reverse, and zero when the patterns are equally specific.
//
// The order is a total order consistent with the trie's branch priority:
// any pattern with a catch-all sorts after every pattern without one;
// among the rest, more segments sort first; on a segment-count tie the
// first position where one side is a literal and the other a parameter
// decides, literal first.
func CompareSpecificity(a, b Pattern) int {
	if a.HasCatchAll() != b.HasCatchAll() {
		if a.HasCatchAll() {
			return 1
		}
		return -1
	}
	if len(a) != len(b) {
		return len(b) - len(a)
	}
	for i := range a {
		aLit := a[i].Kind == SegmentLiteral
		bLit := b[i].Kind == SegmentLiteral
		if aLit != bLit {
			if aLit {
				return -1
			}
			return 1
		}
	}
	return 0
}

// SortBySpecificity stably sorts entries from most to least specific.
// Registration order is preserved among equally specific patterns, so
// first-registered-wins survives the sort.
func SortBySpecificity(entries []*RouteEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return CompareSpecificity(entries[i].Pattern, entries[j].Pattern) < 0
	})
}
