// Package config loads a route manifest from waypost.json.
//
// The file is the declarative input assembled by an upstream route
// discovery step; this package only parses and validates it, then hands
// a router.Manifest to the caller.
//
// # Manifest File Structure
//
//	{
//	  "routes": [
//	    {"pattern": "/", "module": "routes/index"},
//	    {"pattern": "/projects/:id", "module": "routes/projects/show"},
//	    {"pattern": "/old-docs", "kind": "redirect", "redirectTo": "/docs"},
//	    {"pattern": "/docs/:rest*", "module": "routes/docs/page"}
//	  ],
//	  "boundaries": [
//	    {"pattern": "/projects", "module": "routes/projects/error"}
//	  ],
//	  "status": {
//	    "404": {"module": "routes/not-found"}
//	  },
//	  "rootError": {"module": "routes/root-error"}
//	}
package config
