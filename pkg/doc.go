// Package pkg provides the core libraries for the frontier analysis tool.
//
// # Overview
//
// Frontier reports where workspace code depends on external packages: given
// a resolved dependency graph and a target package, it computes the set of
// packages that transitively depend on the target and classifies every edge
// in that subgraph by whether it crosses the workspace boundary.
//
// The typical data flow:
//
//	Lockfile (Cargo.lock, go mod graph)
//	         ↓
//	    [lockfile] package (build the dependency graph)
//	         ↓
//	    [pkggraph] package (graph structure + ancestor closure)
//	         ↓
//	    [frontier] package (target resolution + boundary classification)
//	         ↓
//	    [render] package (TOML/JSON/HTML reports, DOT/SVG diagrams)
//
// # Main Packages
//
// [pkggraph] - Immutable package dependency graph with deterministic
// iteration order and the pruned backward traversal that computes ancestor
// closures.
//
// [frontier] - The analysis itself: substring target resolution, skip-list
// pruning predicates, and the workspace-boundary classification that
// produces the report.
//
// [lockfile] - Parsers turning resolved lockfiles into graphs. No network
// access or version solving happens here; the package manager already did
// that work.
//
// [render] - Report serialization (TOML, JSON, HTML) and Graphviz-based
// subgraph visualization.
//
// # Infrastructure
//
// [cache] - Result caching keyed by graph hash, target, and skip list.
// File-backed for the CLI, Redis-backed for the HTTP server, plus a null
// implementation that disables caching.
//
// [store] - Report archive behind the HTTP API, with in-memory and MongoDB
// implementations.
//
// [httputil] - JSON response helpers and retry-with-backoff used around
// the HTTP server and its backends.
//
// [errors] - Structured error codes shared by the CLI and the API.
//
// [observability] - Optional hooks for metrics and tracing backends.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// [pkggraph]: https://pkg.go.dev/github.com/pkgscope/frontier/pkg/pkggraph
// [frontier]: https://pkg.go.dev/github.com/pkgscope/frontier/pkg/frontier
// [lockfile]: https://pkg.go.dev/github.com/pkgscope/frontier/pkg/lockfile
// [render]: https://pkg.go.dev/github.com/pkgscope/frontier/pkg/render
// [cache]: https://pkg.go.dev/github.com/pkgscope/frontier/pkg/cache
// [store]: https://pkg.go.dev/github.com/pkgscope/frontier/pkg/store
// [httputil]: https://pkg.go.dev/github.com/pkgscope/frontier/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/pkgscope/frontier/pkg/errors
// [observability]: https://pkg.go.dev/github.com/pkgscope/frontier/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/pkgscope/frontier/pkg/buildinfo
package pkg
