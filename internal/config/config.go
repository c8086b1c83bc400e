package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/waypost-dev/waypost/pkg/router"
)

// ManifestFileName is the name of the route manifest file.
const ManifestFileName = "waypost.json"

// File is the on-disk shape of a route manifest.
type File struct {
	// Routes in priority order; earlier entries win on ambiguity.
	Routes []RouteDef `json:"routes"`

	// Boundaries are error boundary registrations.
	Boundaries []BoundaryDef `json:"boundaries,omitempty"`

	// Status maps status codes (as JSON object keys) to entries.
	Status map[string]RouteDef `json:"status,omitempty"`

	// RootError is the optional top-level error handler.
	RootError *BoundaryDef `json:"rootError,omitempty"`
}

// RouteDef is one route definition in the manifest file.
type RouteDef struct {
	// Pattern is the route pattern (e.g. "/projects/:id").
	Pattern string `json:"pattern,omitempty"`

	// Module identifies the handler module.
	Module string `json:"module,omitempty"`

	// Kind is "page" (default) or "redirect".
	Kind string `json:"kind,omitempty"`

	// RedirectTo is the target path for redirect routes.
	RedirectTo string `json:"redirectTo,omitempty"`

	// Parent is an optional back-reference to an enclosing pattern.
	Parent string `json:"parent,omitempty"`

	// Companions lists optional companion module references.
	Companions []string `json:"companions,omitempty"`
}

// BoundaryDef is one error boundary definition in the manifest file.
type BoundaryDef struct {
	Pattern string `json:"pattern,omitempty"`
	Module  string `json:"module"`
}

// Load reads the manifest from the specified directory, looking for
// waypost.json.
func Load(dir string) (*router.Manifest, error) {
	return LoadFile(filepath.Join(dir, ManifestFileName))
}

// LoadFile reads a manifest from the specified file path.
func LoadFile(path string) (*router.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no manifest found at %s", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return file.Manifest()
}

// Manifest converts the file representation into a router.Manifest,
// parsing every pattern. The first error stops conversion, so a broken
// pattern is reported with its source definition.
func (f *File) Manifest() (*router.Manifest, error) {
	m := router.NewManifest()

	for i, def := range f.Routes {
		entry, err := def.entry()
		if err != nil {
			return nil, fmt.Errorf("routes[%d]: %w", i, err)
		}
		if err := m.AddRoute(entry); err != nil {
			return nil, fmt.Errorf("routes[%d]: %w", i, err)
		}
	}

	for i, def := range f.Boundaries {
		if err := m.AddBoundary(def.Pattern, def.Module); err != nil {
			return nil, fmt.Errorf("boundaries[%d]: %w", i, err)
		}
	}

	for key, def := range f.Status {
		code, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("status[%q]: not a status code", key)
		}
		entry, err := def.entry()
		if err != nil {
			return nil, fmt.Errorf("status[%q]: %w", key, err)
		}
		m.SetStatusRoute(code, entry)
	}

	if f.RootError != nil {
		m.SetRootError(f.RootError.Module)
	}

	return m, nil
}

// entry converts a RouteDef into a RouteEntry.
func (d RouteDef) entry() (*router.RouteEntry, error) {
	kind := router.KindPage
	switch d.Kind {
	case "", "page":
	case "redirect":
		kind = router.KindRedirect
	default:
		return nil, fmt.Errorf("unknown route kind %q", d.Kind)
	}

	if kind == router.KindRedirect && d.RedirectTo == "" {
		return nil, fmt.Errorf("redirect route %q has no redirectTo", d.Pattern)
	}

	return &router.RouteEntry{
		Path:       d.Pattern,
		Kind:       kind,
		Module:     d.Module,
		RedirectTo: d.RedirectTo,
		Parent:     d.Parent,
		Companions: d.Companions,
	}, nil
}
