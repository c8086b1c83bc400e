package router

import (
	"strings"

	"github.com/waypost-dev/waypost/pkg/routepath"
)

// node is a node in the route trie.
type node struct {
	// segment is the literal text this node matches, empty for dynamic nodes
	segment string

	// paramName is set on param and catch-all nodes
	paramName string

	// entry is the route terminating exactly at this node, nil otherwise.
	// On a catch-all node the entry is always set at insert time, since a
	// catch-all is terminal by construction.
	entry *RouteEntry

	// boundary is the error boundary annotated at this node, if any
	boundary *ErrorBoundaryEntry

	// children are static segment children
	children []*node

	// paramChild is the single dynamic child (:name)
	paramChild *node

	// catchAllChild is the single catch-all child (:name*); it never has
	// children of its own
	catchAllChild *node
}

func newNode(segment string) *node {
	return &node{segment: segment}
}

// findChild returns the static child with an exact segment match.
func (n *node) findChild(segment string) *node {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

// addChild adds or retrieves the static child for the given segment.
func (n *node) addChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := newNode(segment)
	n.children = append(n.children, child)
	return child
}

// addParamChild creates the dynamic child if absent. The slot is single:
// a second registration with a different name reuses the first child, so
// the first-registered name wins and the second is never observed.
func (n *node) addParamChild(name string) *node {
	if n.paramChild != nil {
		return n.paramChild
	}
	child := newNode("")
	child.paramName = name
	n.paramChild = child
	return child
}

// addCatchAllChild creates the catch-all marker if absent, same
// single-slot rule as addParamChild.
func (n *node) addCatchAllChild(name string) *node {
	if n.catchAllChild != nil {
		return n.catchAllChild
	}
	child := newNode("")
	child.paramName = name
	n.catchAllChild = child
	return child
}

// walk descends from n along the pattern, creating nodes as needed, and
// returns the node the pattern terminates at.
func (n *node) walk(pattern Pattern) *node {
	current := n
	for _, seg := range pattern {
		switch seg.Kind {
		case SegmentCatchAll:
			// Terminal by construction; consumes the rest of the pattern.
			return current.addCatchAllChild(seg.Value)
		case SegmentParam:
			current = current.addParamChild(seg.Value)
		default:
			current = current.addChild(seg.Value)
		}
	}
	return current
}

// insert registers entry at the node its pattern terminates at. The
// first entry registered at a position wins; later ones are ignored,
// mirroring manifest ordering.
func (n *node) insert(pattern Pattern, entry *RouteEntry) {
	target := n.walk(pattern)
	if target.entry == nil {
		target.entry = entry
	}
}

// annotateBoundary records an error boundary at the node its pattern
// terminates at, first registration winning.
func (n *node) annotateBoundary(pattern Pattern, boundary *ErrorBoundaryEntry) {
	target := n.walk(pattern)
	if target.boundary == nil {
		target.boundary = boundary
	}
}

// resolve performs the backtracking descent. Parameter bindings are
// accumulated on the unwind of the successful branch only, so bindings
// made inside an abandoned branch never leak into a sibling's result.
//
// Branch priority at every node: static child, then param child, then
// catch-all. A lower-priority branch is tried only after the
// higher-priority branch has fully failed, however deep that failure was.
func (n *node) resolve(segments []string) (*RouteEntry, Params, bool) {
	if len(segments) == 0 {
		if n.entry != nil {
			return n.entry, nil, true
		}
		// A catch-all matches zero segments, binding the empty string.
		if n.catchAllChild != nil && n.catchAllChild.entry != nil {
			return n.catchAllChild.entry, Params{{Name: n.catchAllChild.paramName, Value: ""}}, true
		}
		return nil, nil, false
	}

	head := segments[0]
	tail := segments[1:]

	// Static match is against the raw, undecoded segment text.
	if child := n.findChild(head); child != nil {
		if entry, params, ok := child.resolve(tail); ok {
			return entry, params, true
		}
	}

	if n.paramChild != nil {
		if entry, params, ok := n.paramChild.resolve(tail); ok {
			bound := make(Params, 0, len(params)+1)
			bound = append(bound, Param{Name: n.paramChild.paramName, Value: routepath.Decode(head)})
			bound = append(bound, params...)
			return entry, bound, true
		}
	}

	if n.catchAllChild != nil && n.catchAllChild.entry != nil {
		rest := routepath.Decode(strings.Join(segments, "/"))
		return n.catchAllChild.entry, Params{{Name: n.catchAllChild.paramName, Value: rest}}, true
	}

	return nil, nil, false
}

// nearestBoundary walks a single branch toward the path, committing to
// the highest-priority child at every step and never backtracking, and
// returns the deepest boundary annotation seen along the way.
func (n *node) nearestBoundary(segments []string) *ErrorBoundaryEntry {
	var found *ErrorBoundaryEntry
	current := n

	for {
		if current.boundary != nil {
			found = current.boundary
		}
		if len(segments) == 0 {
			return found
		}

		if child := current.findChild(segments[0]); child != nil {
			current = child
			segments = segments[1:]
			continue
		}
		if current.paramChild != nil {
			current = current.paramChild
			segments = segments[1:]
			continue
		}
		if current.catchAllChild != nil {
			current = current.catchAllChild
			segments = nil
			continue
		}
		return found
	}
}
