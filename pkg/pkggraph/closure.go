package pkggraph

// AdmitFunc decides whether a traversal may cross an edge. Returning false
// prunes the edge structurally: nodes reachable only through it are never
// visited. The predicate is evaluated once per edge during the walk.
type AdmitFunc func(Edge) bool

// AdmitAll is the predicate that accepts every edge.
func AdmitAll(Edge) bool { return true }

// Subgraph is the induced ancestor subgraph produced by [Graph.AncestorClosure].
// It owns no nodes - it is a view over the parent graph, scoped to a single
// analysis - and records both the member set and the admissible edges whose
// endpoints are members.
type Subgraph struct {
	g       *Graph
	members map[string]bool
	order   []string // member IDs in discovery order
	edges   []Edge   // admissible induced edges in discovery order
}

// AncestorClosure computes the set of packages from which root is reachable
// by following dependency edges forward, walking the graph backward from
// root with a worklist. Edges rejected by admit are not crossed, and
// anything reachable only through a rejected edge stays out of the closure.
//
// The walk handles diamond-shaped reachability (a node on multiple paths is
// visited once) and terminates on any acyclic graph. Acyclicity is an
// assumed precondition; behavior on a cyclic input is unspecified.
//
// Returns ErrUnknownNode if root is not in the graph. A nil admit accepts
// every edge.
func (g *Graph) AncestorClosure(root string, admit AdmitFunc) (*Subgraph, error) {
	if _, ok := g.nodes[root]; !ok {
		return nil, ErrUnknownNode
	}
	if admit == nil {
		admit = AdmitAll
	}

	sub := &Subgraph{
		g:       g,
		members: map[string]bool{root: true},
		order:   []string{root},
	}

	queue := []string{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, idx := range g.incoming[id] {
			e := g.edges[idx]
			if !admit(e) {
				continue
			}
			sub.edges = append(sub.edges, e)
			if !sub.members[e.From] {
				sub.members[e.From] = true
				sub.order = append(sub.order, e.From)
				queue = append(queue, e.From)
			}
		}
	}

	return sub, nil
}

// Contains reports whether the package is part of the closure.
func (s *Subgraph) Contains(id string) bool { return s.members[id] }

// Len returns the number of packages in the closure.
func (s *Subgraph) Len() int { return len(s.order) }

// NodeIDs returns the closure members in discovery order. The root comes
// first, then ancestors in breadth-first distance from it.
func (s *Subgraph) NodeIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Edges returns every admissible edge with both endpoints in the closure,
// in discovery order. The order is stable for a fixed graph and predicate,
// which keeps downstream reports reproducible.
func (s *Subgraph) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Node looks up package metadata in the parent graph.
func (s *Subgraph) Node(id string) (Node, bool) { return s.g.Node(id) }
