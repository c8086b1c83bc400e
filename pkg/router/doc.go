// Package router implements trie-based URL route matching for Waypost.
//
// The router provides:
//   - Pattern parsing (":name" params, ":name*" catch-alls)
//   - A route trie with priority-ordered backtracking matching
//   - Error boundary resolution via a non-backtracking prefix walk
//   - A declarative route manifest with a specificity comparator
//   - Parameter extraction with typed struct binding
//
// # Patterns
//
// Routes are registered as pattern strings:
//
//	/about                  static
//	/projects/:id           named parameter, one segment
//	/docs/:rest*            named catch-all, zero or more segments
//
// A catch-all may only appear as the final segment, and a pattern may
// contain at most one.
//
// # Matching priority
//
// At every trie node, branches are tried in order: static child, then
// parameter child, then catch-all. A branch that dead-ends deeper in the
// trie is abandoned and the next-priority sibling is tried, so a static
// prefix never shadows a dynamic route that actually completes:
//
//	/files/:id/edit  and  /files/:rest*
//	/files/1/edit     → :id/edit with id=1
//	/files/1/download → catch-all with rest=1/download
//
// # Usage
//
//	m := router.NewManifest()
//	m.AddPage("/projects/:id", "routes/projects/show")
//	m.AddBoundary("/projects", "routes/projects/error")
//
//	r, err := router.New(m)
//	result, ok := r.Match("/projects/123")
//	if ok {
//	    // result.Entry.Module == "routes/projects/show"
//	    // result.Params.Get("id") == "123"
//	}
//	boundary, ok := r.FindBoundary("/projects/123")
//
// The built trie is immutable; Reload builds a replacement off to the
// side and publishes it atomically, so concurrent lookups always see a
// complete tree.
package router
