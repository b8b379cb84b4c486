// Package pkggraph provides an immutable package dependency graph and the
// reverse-reachability queries that frontier analysis is built on.
//
// # Overview
//
// A graph holds one [Node] per resolved package version and one [Edge] per
// declared dependency. Nodes carry the workspace-membership flag that the
// frontier analysis classifies edges by; edges carry only their endpoints
// plus a display-only dependency kind.
//
// Graphs are built once - by a lockfile parser or by [ReadJSON] - and read
// thereafter. The graph is assumed acyclic, as produced by package-manager
// resolution. This is a documented precondition, not an enforced invariant:
// traversal behavior on a cyclic graph is unspecified.
//
// # Basic Usage
//
//	g := pkggraph.New()
//	g.AddNode(pkggraph.Node{ID: "app 0.1.0 (workspace)", Name: "app", InWorkspace: true})
//	g.AddNode(pkggraph.Node{ID: "serde 1.0.188 (registry)", Name: "serde", Version: "1.0.188"})
//	g.AddEdge(pkggraph.Edge{From: "app 0.1.0 (workspace)", To: "serde 1.0.188 (registry)"})
//
// # Ancestor Closures
//
// [Graph.AncestorClosure] walks the graph backward from a root package and
// returns the induced [Subgraph] of every package that depends on it,
// directly or transitively. An [AdmitFunc] prunes edges during the walk:
// a rejected edge is never crossed, so packages reachable only through it
// stay out of the closure entirely. This is structural pruning, not a
// post-filter over a full closure.
//
// # Serialization
//
// [WriteJSON] and [ReadJSON] define the graph interchange format shared by
// the parse and analyze commands. The format preserves node and edge order
// for byte-stable round trips.
//
// # Concurrency
//
// Graphs are not safe for concurrent mutation. A fully built graph and its
// subgraphs may be queried from any number of goroutines.
package pkggraph
