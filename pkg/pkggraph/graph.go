package pkggraph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All packages must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Package IDs must be unique across the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrUnknownNode is returned by [Graph.AncestorClosure] when the root
	// node does not exist in the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// Node is a single resolved package version in a dependency graph.
//
// ID is an opaque, globally unique identifier that combines name, version
// and source location (e.g. "serde 1.0.188 (registry+https://...)"). Name
// alone is not unique: the same name can be resolved from several sources.
type Node struct {
	ID          string // Unique identifier, stable across runs
	Name        string // Human-readable package name
	Version     string // Resolved version
	InWorkspace bool   // Package lives in the local source tree
}

// Edge is a directed dependency declaration: the From package depends on
// the To package. Kind carries the declaration class ("normal", "dev",
// "build") for display purposes; analysis treats all kinds alike.
type Edge struct {
	From string // Source node ID (the dependent)
	To   string // Target node ID (the dependency)
	Kind string
}

// Graph is an immutable-once-built package dependency graph.
//
// Construction happens through AddNode/AddEdge while loading resolved
// build-tool metadata; afterwards the graph is only read. Graph assumes the
// edge set is acyclic, as produced by package-manager resolution. It does
// not verify this - traversal behavior on a cyclic graph is unspecified.
//
// Graph is not safe for concurrent mutation, but any number of goroutines
// may query a fully built graph.
type Graph struct {
	nodes    map[string]*Node
	order    []string // node IDs in insertion order
	edges    []Edge
	incoming map[string][]int // node ID -> indices into edges where To == ID
	outgoing map[string][]int // node ID -> indices into edges where From == ID
}

// New creates an empty package graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		incoming: make(map[string][]int),
		outgoing: make(map[string][]int),
	}
}

// AddNode adds a package to the graph.
// Returns ErrInvalidNodeID for an empty ID or ErrDuplicateNodeID if the
// ID is already present.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds a dependency edge between two existing packages.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if either endpoint
// has not been added. Duplicate edges are allowed but unusual.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], idx)
	g.incoming[e.To] = append(g.incoming[e.To], idx)
	return nil
}

// Node returns the package with the given ID and true, or a zero Node and
// false if no such package exists.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// NodeIDs returns all package identifiers in insertion order.
// The returned slice is a copy and safe to modify.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of packages in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of dependency edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Dependents returns the edges pointing at the given package, i.e. the
// packages that directly depend on id. Order matches edge insertion order.
func (g *Graph) Dependents(id string) []Edge {
	idxs := g.incoming[id]
	out := make([]Edge, len(idxs))
	for i, idx := range idxs {
		out[i] = g.edges[idx]
	}
	return out
}

// Dependencies returns the edges leaving the given package, i.e. the
// packages that id directly depends on. Order matches edge insertion order.
func (g *Graph) Dependencies(id string) []Edge {
	idxs := g.outgoing[id]
	out := make([]Edge, len(idxs))
	for i, idx := range idxs {
		out[i] = g.edges[idx]
	}
	return out
}

// WorkspaceCount returns the number of workspace-local packages.
func (g *Graph) WorkspaceCount() int {
	count := 0
	for _, id := range g.order {
		if g.nodes[id].InWorkspace {
			count++
		}
	}
	return count
}
