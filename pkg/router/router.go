package router

import (
	"log/slog"
	"sync/atomic"

	"github.com/waypost-dev/waypost/pkg/routepath"
)

// Param is a single extracted route parameter.
type Param struct {
	Name  string
	Value string
}

// Params holds extracted parameters in pattern segment order. Values are
// never re-ordered or deduplicated.
type Params []Param

// Get returns the value bound to name.
func (ps Params) Get(name string) (string, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Map returns the parameters as a plain map, losing order.
func (ps Params) Map() map[string]string {
	if ps == nil {
		return nil
	}
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		if _, exists := m[p.Name]; !exists {
			m[p.Name] = p.Value
		}
	}
	return m
}

// MatchResult is the outcome of a successful route match.
type MatchResult struct {
	// Entry is the matched route.
	Entry *RouteEntry

	// Params are the extracted parameters in pattern order.
	Params Params
}

// Resolver is the read-side interface of a Router, implemented also by
// the observability wrappers in pkg/middleware.
type Resolver interface {
	// Match resolves a request path to a route entry with extracted
	// parameters. The second return is false when nothing matched;
	// that is a normal outcome, not an error.
	Match(path string) (*MatchResult, bool)

	// FindBoundary resolves the nearest enclosing error boundary for a
	// path by a non-backtracking prefix walk.
	FindBoundary(path string) (*ErrorBoundaryEntry, bool)
}

// tree is one immutable built view of a manifest. Routers swap whole
// trees on reload; a tree is never mutated after construction.
type tree struct {
	root     *node
	manifest *Manifest
}

// build constructs a tree from a manifest, parsing any entry patterns
// not already parsed. Routes and boundaries are inserted in manifest
// order, so earlier registrations win every in-trie ambiguity.
func build(m *Manifest) (*tree, error) {
	root := newNode("")

	for _, entry := range m.Routes {
		if entry.Pattern == nil {
			p, err := ParsePattern(entry.Path)
			if err != nil {
				return nil, err
			}
			entry.Pattern = p
		}
		root.insert(entry.Pattern, entry)
	}

	for _, boundary := range m.Boundaries {
		if boundary.Pattern == nil {
			p, err := ParsePattern(boundary.Path)
			if err != nil {
				return nil, err
			}
			boundary.Pattern = p
		}
		root.annotateBoundary(boundary.Pattern, boundary)
	}

	if m.RootError != nil && root.boundary == nil {
		root.boundary = m.RootError
	}

	return &tree{root: root, manifest: m}, nil
}

// Router resolves request paths against a published route tree.
//
// Lookups are pure and safe for unlimited concurrency. Reload builds a
// fresh tree off to the side and publishes it atomically, so in-flight
// lookups always observe a complete, consistent snapshot.
type Router struct {
	tree   atomic.Pointer[tree]
	logger *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the structured logger. If unset, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// New builds a Router from a manifest. The only build-time failure is a
// malformed pattern; an empty manifest is valid and matches nothing.
func New(m *Manifest, opts ...Option) (*Router, error) {
	r := &Router{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if err := r.Reload(m); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload rebuilds the route tree from a new manifest and swaps it in.
// On error the previously published tree stays in effect.
func (r *Router) Reload(m *Manifest) error {
	t, err := build(m)
	if err != nil {
		return err
	}
	r.tree.Store(t)
	r.logger.Debug("route tree published",
		"routes", len(m.Routes),
		"boundaries", len(m.Boundaries),
		"status_routes", len(m.StatusRoutes))
	return nil
}

// Match resolves a request path to the highest-priority registered route.
//
// One trailing slash is stripped unless the path is the bare root, the
// path is split into raw segments, and the trie is descended with
// backtracking. Static segments compare against undecoded text;
// parameter and catch-all values are percent-decoded leniently.
func (r *Router) Match(path string) (*MatchResult, bool) {
	t := r.tree.Load()
	if t == nil {
		return nil, false
	}
	entry, params, ok := t.root.resolve(routepath.Split(routepath.Normalize(path)))
	if !ok {
		return nil, false
	}
	return &MatchResult{Entry: entry, Params: params}, true
}

// FindBoundary returns the deepest error boundary enclosing path. The
// walk commits to one branch per segment and never backtracks, so a
// boundary on a dynamic sibling is not found for a path claimed by a
// boundary-less static sibling at the same depth.
func (r *Router) FindBoundary(path string) (*ErrorBoundaryEntry, bool) {
	t := r.tree.Load()
	if t == nil {
		return nil, false
	}
	boundary := t.root.nearestBoundary(routepath.Split(routepath.Normalize(path)))
	if boundary == nil {
		return nil, false
	}
	return boundary, true
}

// StatusRoute returns the entry registered for an HTTP status code.
func (r *Router) StatusRoute(code int) (*RouteEntry, bool) {
	t := r.tree.Load()
	if t == nil {
		return nil, false
	}
	entry, ok := t.manifest.StatusRoutes[code]
	return entry, ok
}

// RootError returns the manifest's root error handler.
func (r *Router) RootError() (*ErrorBoundaryEntry, bool) {
	t := r.tree.Load()
	if t == nil || t.manifest.RootError == nil {
		return nil, false
	}
	return t.manifest.RootError, true
}

// Manifest returns the currently published manifest.
func (r *Router) Manifest() *Manifest {
	t := r.tree.Load()
	if t == nil {
		return nil
	}
	return t.manifest
}
