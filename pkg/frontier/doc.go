// Package frontier finds the edges where dependency provenance crosses the
// boundary between workspace-local and externally-sourced packages.
//
// # Overview
//
// Given a package dependency graph and a target package, the analysis
// answers: which external packages introduce, through which workspace
// package, a transitive dependency on the target? It restricts itself to
// the subgraph of packages that depend on the target, then reports every
// edge in that subgraph with exactly one workspace-local endpoint.
//
// The flow is: [ResolveTarget] picks the unique package matching an ID
// substring, [SkipPredicate] turns a skip list into an edge-admissibility
// predicate, and [Resolve] walks the pruned ancestor closure and groups the
// boundary crossings into a [Report].
//
// # Failure Modes
//
// Target ambiguity is the only failure: zero or multiple substring matches
// abort the run with [AmbiguousTargetError] before any traversal happens,
// and no partial report is produced. Resolution itself is deterministic and
// pure, so there is nothing to retry.
package frontier
