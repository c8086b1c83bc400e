// Package middleware provides observability wrappers for the router:
// Prometheus metrics and OpenTelemetry tracing around route and boundary
// lookups.
//
// Wrappers decorate a router.Resolver and implement it in turn, so they
// compose:
//
//	r, _ := router.New(manifest)
//	resolver := middleware.Prometheus(
//	    middleware.Trace(r, middleware.WithTracerName("my-app")),
//	    middleware.WithNamespace("myapp"),
//	)
//	result, ok := resolver.Match("/projects/123")
//
// The lookups themselves stay pure and non-blocking; the wrappers only
// record what happened.
package middleware
